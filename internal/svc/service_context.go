package svc

import (
	"time"

	"solana-mirror/internal/cache"
	"solana-mirror/internal/config"
	"solana-mirror/internal/logic/chart"
	"solana-mirror/internal/logic/mirror"
	"solana-mirror/internal/pricing"
	"solana-mirror/internal/rpcclient"
	"solana-mirror/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ServiceContext 聚合服务级资源，构造一次后在各 handler / service 间共享。
type ServiceContext struct {
	Config     config.Config
	Rpc        *rpcclient.Client
	Mirror     *mirror.Mirror
	ChartCache *cache.ChartCache
}

// NewServiceContext 创建服务上下文。
func NewServiceContext(c config.Config) (*ServiceContext, error) {
	rpcClient := rpcclient.New(c.Rpc.Endpoint)

	book, err := pricing.LoadPriceBook(c.Price.PriceBookPath)
	if err != nil {
		return nil, err
	}
	logger.Infof("价格映射表加载完成: path=%s entries=%d", c.Price.PriceBookPath, book.Len())

	hist := pricing.NewCachedHistory(
		pricing.NewCoinGeckoClient(c.Price.CoingeckoEndpoint),
		cache.NewPriceCache(),
	)
	spot := pricing.NewJupiterClient(c.Price.JupiterEndpoint, rpcClient)

	annotator := &chart.Annotator{
		Hist: hist,
		Spot: spot,
		Book: book,
	}

	m := mirror.New(rpcClient, annotator, chart.SystemClock{}, rpcclient.FetchOpts{
		BatchSize:       c.Rpc.BatchSize,
		MaxTransactions: c.Rpc.MaxTransactions,
		IncludeFailed:   c.Rpc.IncludeFailed,
	})

	// Redis 未配置时图表缓存退化为直通
	var chartCache *cache.ChartCache
	if c.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: c.Redis.Addr})
		chartCache = cache.NewChartCache(rdb, time.Duration(c.Redis.ChartTTLSec)*time.Second)
	}

	return &ServiceContext{
		Config:     c,
		Rpc:        rpcClient,
		Mirror:     m,
		ChartCache: chartCache,
	}, nil
}
