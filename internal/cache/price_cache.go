package cache

import (
	"sort"
	"sync"

	"solana-mirror/internal/pricing"
)

// rangeEntry 记录一次区间拉取的结果及其覆盖范围。
// 覆盖范围以请求区间为准（返回的首个采样点可能晚于请求起点）。
type rangeEntry struct {
	from, to int64
	points   []pricing.PricePoint
}

// PriceCache 按外部价格标识缓存历史价格序列，序列按时间升序排列。
// 同一资产的重复图表请求命中缓存，不再对价格源发起重复的区间查询。
type PriceCache struct {
	mu      sync.RWMutex
	history map[string]rangeEntry
}

func NewPriceCache() *PriceCache {
	return &PriceCache{
		history: make(map[string]rangeEntry),
	}
}

// Store 写入一次区间查询的结果，覆盖该资产之前的缓存。
func (pc *PriceCache) Store(priceID string, from, to int64, points []pricing.PricePoint) {
	// 按 Timestamp 升序排列（价格源通常已有序，这里兜底）
	sorted := make([]pricing.PricePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.history[priceID] = rangeEntry{from: from, to: to, points: sorted}
}

// Covering 返回已缓存且完整覆盖 [from, to] 的序列；不覆盖时 ok 为 false。
func (pc *PriceCache) Covering(priceID string, from, to int64) ([]pricing.PricePoint, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	entry, ok := pc.history[priceID]
	if !ok || entry.from > from || entry.to < to {
		return nil, false
	}
	return entry.points, true
}
