package pricing

import "context"

// rangeCache 是 CachedHistory 依赖的缓存能力（由 cache.PriceCache 实现）。
type rangeCache interface {
	Store(priceID string, from, to int64, points []PricePoint)
	Covering(priceID string, from, to int64) ([]PricePoint, bool)
}

// CachedHistory 在历史价格源外包一层进程内缓存：
// 已缓存区间完整覆盖请求时直接命中，否则穿透拉取并回填。
type CachedHistory struct {
	src   HistoricalPriceLookup
	cache rangeCache
}

func NewCachedHistory(src HistoricalPriceLookup, cache rangeCache) *CachedHistory {
	return &CachedHistory{src: src, cache: cache}
}

func (c *CachedHistory) RangeQuery(ctx context.Context, priceID string, from, to int64) ([]PricePoint, error) {
	if points, ok := c.cache.Covering(priceID, from, to); ok {
		return points, nil
	}
	points, err := c.src.RangeQuery(ctx, priceID, from, to)
	if err != nil {
		return nil, err
	}
	c.cache.Store(priceID, from, to, points)
	return points, nil
}
