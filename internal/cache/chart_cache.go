package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"solana-mirror/internal/domain"
	"solana-mirror/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Redis key 前缀
const chartKeyPrefix = "mirror:chart"

// ChartCache 将计算好的图表序列按 (地址, 时间范围) 缓存到 Redis。
// 图表计算涉及一整条 RPC + 价格流水线，短 TTL 缓存显著降低重复请求成本。
// 缓存层是尽力而为的：Redis 故障只记日志，不影响请求链路。
type ChartCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewChartCache(rdb *redis.Client, ttl time.Duration) *ChartCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &ChartCache{rdb: rdb, ttl: ttl}
}

func chartKey(address string, count int, unit domain.TimeframeUnit) string {
	return fmt.Sprintf("%s:%s:%d%s", chartKeyPrefix, address, count, unit)
}

// Get 读取缓存的图表序列；未命中或任何错误返回 ok=false。
func (c *ChartCache) Get(ctx context.Context, address string, count int, unit domain.TimeframeUnit) ([]domain.ChartPoint, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	key := chartKey(address, count, unit)
	val, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == redis.Nil:
		return nil, false
	case err != nil:
		logger.Warnf("[ChartCache] redis get 失败: key=%s err=%v", key, err)
		return nil, false
	}

	var points []domain.ChartPoint
	if err := json.Unmarshal(val, &points); err != nil {
		logger.Warnf("[ChartCache] 缓存反序列化失败: key=%s err=%v", key, err)
		return nil, false
	}
	return points, true
}

// Set 写入图表序列，带 TTL。
func (c *ChartCache) Set(ctx context.Context, address string, count int, unit domain.TimeframeUnit, points []domain.ChartPoint) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(points)
	if err != nil {
		logger.Warnf("[ChartCache] 缓存序列化失败: address=%s err=%v", address, err)
		return
	}
	key := chartKey(address, count, unit)
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warnf("[ChartCache] redis set 失败: key=%s err=%v", key, err)
	}
}
