package chart

import (
	"context"

	"solana-mirror/internal/consts"
	"solana-mirror/internal/domain"
	"solana-mirror/internal/pricing"
	"solana-mirror/pkg/utils"
)

// 价格拉取的并发上限（按资产扇出）
const priceFetchWorkers = 8

// Annotator 为重采样后的快照序列附加美元价格。
//
// 历史桶：对每个在映射表中有外部标识的资产，一次性拉取覆盖整个序列区间的
// 历史价格序列（按资产并发扇出，汇合后再组装），单个快照按
// floor((ts - seriesStart) / sampleInterval) 定位采样点，采样间隔以价格源
// 实际返回的粒度推断；越界下标视为价格未解析。
//
// 末尾快照（"now"）：历史源有分钟级滞后，改为逐资产实时报价。
//
// 无映射或价格未解析（0 / 拉取失败）的资产从该快照的计价持仓中剔除
// （而非计为 0），失败永远是局部的，不中断序列。
type Annotator struct {
	Hist pricing.HistoricalPriceLookup
	Spot pricing.SpotPriceLookup
	Book *pricing.PriceBook
}

// priceSeries 是单个资产的历史价格序列，按固定间隔索引。
type priceSeries struct {
	start    int64
	interval int64
	prices   []float64
}

// At 返回时间戳对应的采样价格；越界返回 0 与 false。
func (s *priceSeries) At(ts int64) (float64, bool) {
	if len(s.prices) == 0 || ts < s.start || s.interval <= 0 {
		return 0, false
	}
	idx := (ts - s.start) / s.interval
	if idx >= int64(len(s.prices)) {
		return 0, false
	}
	return s.prices[idx], true
}

func newPriceSeries(points []pricing.PricePoint) *priceSeries {
	if len(points) == 0 {
		return nil
	}
	s := &priceSeries{start: points[0].Timestamp, interval: 1}
	if len(points) > 1 {
		// 以实际返回的采样间距推断粒度：区间超过价格源精细留存窗口时会降级为天级
		s.interval = points[1].Timestamp - points[0].Timestamp
		if s.interval <= 0 {
			s.interval = 1
		}
	}
	s.prices = make([]float64, 0, len(points))
	for _, p := range points {
		s.prices = append(s.prices, p.Price)
	}
	return s
}

// Annotate 为每个快照附加资产单价与合计美元价值。
func (a *Annotator) Annotate(ctx context.Context, states []domain.BalanceState) []domain.ChartPoint {
	if len(states) == 0 {
		return nil
	}

	mints := a.pricedMints(states)
	series := a.fetchSeries(ctx, mints, states[0].Timestamp, states[len(states)-1].Timestamp)

	points := make([]domain.ChartPoint, 0, len(states))
	for i, state := range states {
		isLast := i == len(states)-1

		var spot map[string]float64
		if isLast {
			spot = a.fetchSpot(ctx, mints, state)
		}

		balances := make(map[string]domain.AmountWithPrice, len(state.Balances))
		usd := 0.0
		for mint, amount := range state.Balances {
			var price float64
			if isLast {
				price = spot[mint]
			} else if s, ok := series[mint]; ok && s != nil {
				price, _ = s.At(state.Timestamp)
			}
			if price <= 0 {
				continue // 价格未解析：剔除该资产，不污染 usdValue
			}
			balances[mint] = domain.AmountWithPrice{Amount: amount, Price: price}
			usd += amount.Formatted * price
		}

		points = append(points, domain.ChartPoint{
			Timestamp: state.Timestamp,
			Balances:  balances,
			UsdValue:  usd,
		})
	}

	return points
}

// pricedMints 收集全部快照中出现过、且在映射表中有外部价格标识的资产，
// 保持首次出现顺序。无映射的资产整体跳过，不定价也不阻塞流水线。
func (a *Annotator) pricedMints(states []domain.BalanceState) []string {
	seen := make(map[string]bool)
	mints := make([]string, 0, 8)
	for _, state := range states {
		for mint := range state.Balances {
			if seen[mint] {
				continue
			}
			seen[mint] = true
			if _, ok := a.Book.PriceID(mint); ok {
				mints = append(mints, mint)
			}
		}
	}
	return mints
}

// fetchSeries 按资产并发拉取历史价格序列，汇合后按 mint 归并。
// 单个资产拉取失败只丢弃该资产的贡献，不影响其它分支。
func (a *Annotator) fetchSeries(ctx context.Context, mints []string, from, to int64) map[string]*priceSeries {
	type result struct {
		mint   string
		series *priceSeries
	}

	results := utils.ParallelMap(mints, priceFetchWorkers, func(mint string) result {
		priceID, _ := a.Book.PriceID(mint)
		points, err := a.Hist.RangeQuery(ctx, priceID, from, to)
		if err != nil {
			return result{mint: mint}
		}
		return result{mint: mint, series: newPriceSeries(points)}
	})

	series := make(map[string]*priceSeries, len(results))
	for _, r := range results {
		if r.series != nil {
			series[r.mint] = r.series
		}
	}
	return series
}

// fetchSpot 对末尾快照中持有的资产并发获取实时报价（以 USDC 计价）。
func (a *Annotator) fetchSpot(ctx context.Context, mints []string, state domain.BalanceState) map[string]float64 {
	held := make([]string, 0, len(mints))
	for _, mint := range mints {
		if _, ok := state.Balances[mint]; ok {
			held = append(held, mint)
		}
	}

	type result struct {
		mint  string
		price float64
	}
	results := utils.ParallelMap(held, priceFetchWorkers, func(mint string) result {
		return result{mint: mint, price: a.Spot.Quote(ctx, mint, consts.USDCMintStr)}
	})

	spot := make(map[string]float64, len(results))
	for _, r := range results {
		spot[r.mint] = r.price
	}
	return spot
}
