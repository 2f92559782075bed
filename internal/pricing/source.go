package pricing

import "context"

// PricePoint 表示历史价格序列中的一个采样点。
type PricePoint struct {
	Timestamp int64   // Unix 秒
	Price     float64 // 美元价格
}

// HistoricalPriceLookup 是历史价格区间查询源。
// priceID 为外部价格源的资产标识（与链上 mint 地址不同），
// 返回 [from, to] 区间内按时间升序的采样序列。
type HistoricalPriceLookup interface {
	RangeQuery(ctx context.Context, priceID string, from, to int64) ([]PricePoint, error)
}

// SpotPriceLookup 是实时报价源：返回 inputMint 以 outputMint 计价的即时价格。
// 相同资产对返回精确的 1；任何失败返回 0，永不报错。
type SpotPriceLookup interface {
	Quote(ctx context.Context, inputMint, outputMint string) float64
}

// DecimalsSource 解析某个 mint 的精度（报价换算需要）。
type DecimalsSource interface {
	TokenDecimals(ctx context.Context, mint string) (uint8, error)
}
