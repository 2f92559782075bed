package config

import (
	"github.com/zeromicro/go-zero/rest"

	"solana-mirror/pkg/logger"
)

// LogConfig 日志配置
type LogConfig struct {
	Format   string `json:",default=json"`    // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:",optional"`        // 日志目录；为空输出到 stdout
	Level    string `json:",default=info"`    // 日志级别：debug / info / warn / error
	Compress bool   `json:",default=false"`   // 是否压缩旧日志文件
}

func (c LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig Solana RPC 节点配置
type RpcConfig struct {
	Endpoint        string
	BatchSize       int  `json:",default=100"` // 交易拉取单批签名数
	MaxTransactions int  `json:",optional"`    // 累计拉取签名总数上限（0 不限制）
	IncludeFailed   bool `json:",default=false"`
}

// PriceConfig 价格源配置
type PriceConfig struct {
	CoingeckoEndpoint string `json:",optional"` // 留空使用官方地址
	JupiterEndpoint   string `json:",optional"`
	PriceBookPath     string `json:",default=etc/coingecko.json"` // mint → 外部价格标识映射表
}

// RedisConfig 图表缓存配置（可选）
type RedisConfig struct {
	Addr        string `json:",optional"`
	ChartTTLSec int    `json:",default=60"`
}

// KafkaConfig 余额事件生产者配置（可选，watch 开启时必填）
type KafkaConfig struct {
	Brokers    string `json:",optional"` // 多个用英文逗号分隔
	Topic      string `json:",default=mirror-balance-events"`
	Partitions int    `json:",default=1"`
	BatchSize  int    `json:",optional"` // 批处理大小（字节）
	LingerMs   int    `json:",optional"` // 批处理最大延迟（毫秒）
}

// WatchConfig 账户监听配置：定期轮询地址增量交易并发布余额事件
type WatchConfig struct {
	Addresses      []string `json:",optional"`
	IntervalSec    int      `json:",default=30"`
	SendTimeoutMs  int      `json:",default=3000"` // 单条事件发送并等待 ack 的超时
	SignatureBatch int      `json:",default=50"`   // 单轮最多处理的新签名数
}

// Config 是服务主配置结构体
type Config struct {
	rest.RestConf
	Log   LogConfig   `json:",optional"`
	Rpc   RpcConfig
	Price PriceConfig `json:",optional"`
	Redis RedisConfig `json:",optional"`
	Kafka KafkaConfig `json:",optional"`
	Watch WatchConfig `json:",optional"`
}
