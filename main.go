// @title Quiz Master 后端 API
// @version 1.0
// @description 测验管理平台后端：题库管理、作答评分、录屏审核与站内消息。

// @contact.name API支持

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/PriyanshVijay26/quiz-master/internal/app"
	"github.com/PriyanshVijay26/quiz-master/internal/config"
	"github.com/PriyanshVijay26/quiz-master/pkg/logger"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "配置文件所在目录")
	seedOnly := flag.Bool("seed-only", false, "只执行迁移与初始数据写入，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.SeedOnly = *seedOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if cfg.SeedOnly {
		application.Close()
		log.Println("初始数据写入完成，退出程序")
		return
	}

	application.Run()
}
