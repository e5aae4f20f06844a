// 手动导入题库种子数据
//
// 服务启动时会自动写入内置种子数据（seed.enabled）。
// 此脚本用于向已有数据库批量导入新的 YAML 题库，重复执行不会产生重复记录。
//
// 用法: go run scripts/import_seed.go -file path/to/catalog.yaml

package main

import (
	"flag"
	"log"

	"github.com/PriyanshVijay26/quiz-master/internal/config"
	"github.com/PriyanshVijay26/quiz-master/pkg/database"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件所在目录")
	file := flag.String("file", "", "种子文件路径，为空时使用内置数据")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	raw, err := database.LoadSeedFile(*file)
	if err != nil {
		log.Fatalf("读取种子文件失败: %v", err)
	}

	if err := database.Seed(db, raw); err != nil {
		log.Fatalf("导入失败: %v", err)
	}
	log.Println("导入完成")
}
