package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PriyanshVijay26/quiz-master/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const catalogVersionKey = "catalog:version"

// CatalogCache 用户端题库列表的读缓存。
// 每次题库变更递增版本号，旧版本的键自然过期，不会被再次读取。
// Redis 未启用时所有操作为空实现。
type CatalogCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{Redis: rdb, TTL: ttl}
}

func (c *CatalogCache) enabled() bool {
	return c != nil && c.Redis != nil
}

func (c *CatalogCache) key(ctx context.Context, name string) (string, error) {
	version, err := c.Redis.Get(ctx, catalogVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("catalog:v%d:%s", version, name), nil
}

// Get 命中时把缓存内容解码到 dest。
// 返回本次读取时解析出的键，未命中时调用方须用同一个键回填，
// 这样读取期间发生的变更会让回填落在已失效的旧版本上。
func (c *CatalogCache) Get(ctx context.Context, name string, dest interface{}) (string, bool) {
	if !c.enabled() {
		return "", false
	}

	key, err := c.key(ctx, name)
	if err != nil {
		logger.Log.Warn("Catalog cache unavailable", zap.Error(err))
		return "", false
	}

	data, err := c.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return key, false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Log.Warn("Catalog cache decode failed", zap.String("key", key), zap.Error(err))
		return key, false
	}
	return key, true
}

// Set 写入 Get 返回的键，键为空时不做任何事
func (c *CatalogCache) Set(ctx context.Context, key string, value interface{}) {
	if !c.enabled() || key == "" {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, key, data, c.TTL).Err(); err != nil {
		logger.Log.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate 递增版本号，使当前所有缓存失效
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.Redis.Incr(ctx, catalogVersionKey).Err(); err != nil {
		logger.Log.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
}
