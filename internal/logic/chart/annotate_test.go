package chart

import (
	"context"
	"testing"

	"solana-mirror/internal/consts"
	"solana-mirror/internal/domain"
	"solana-mirror/internal/pricing"
	"solana-mirror/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unmappedMint = "UnMaPPedMint1111111111111111111111111111111"

// fakeHist 按 priceID 返回预置的历史价格序列。
type fakeHist struct {
	series map[string][]pricing.PricePoint
	err    error
	calls  []string
}

func (f *fakeHist) RangeQuery(_ context.Context, priceID string, _, _ int64) ([]pricing.PricePoint, error) {
	f.calls = append(f.calls, priceID)
	if f.err != nil {
		return nil, f.err
	}
	return f.series[priceID], nil
}

// fakeSpot 按 mint 返回预置的实时报价；相同资产对返回 1。
type fakeSpot struct {
	quotes map[string]float64
}

func (f *fakeSpot) Quote(_ context.Context, inputMint, outputMint string) float64 {
	if inputMint == outputMint {
		return 1
	}
	return f.quotes[inputMint]
}

func testBook() *pricing.PriceBook {
	return pricing.NewPriceBook(map[string]pricing.TokenEntry{
		consts.SOLMintStr:  {ID: "solana", Symbol: "SOL"},
		consts.USDCMintStr: {ID: "usd-coin", Symbol: "USDC"},
	})
}

func amount(raw uint64, decimals uint8) types.Amount {
	return types.AmountFromUint64(raw, decimals)
}

// 测试完整标注：历史桶走历史序列，末尾快照走实时报价
func TestAnnotate_Full(t *testing.T) {
	hist := &fakeHist{series: map[string][]pricing.PricePoint{
		"solana": {
			{Timestamp: 1700000000, Price: 60},
			{Timestamp: 1700003600, Price: 62},
			{Timestamp: 1700007200, Price: 64},
		},
		"usd-coin": {
			{Timestamp: 1700000000, Price: 1},
			{Timestamp: 1700003600, Price: 1},
			{Timestamp: 1700007200, Price: 1},
		},
	}}
	spot := &fakeSpot{quotes: map[string]float64{consts.SOLMintStr: 65}}
	a := &Annotator{Hist: hist, Spot: spot, Book: testBook()}

	states := []domain.BalanceState{
		{
			Timestamp: 1700003600,
			Balances: map[string]types.Amount{
				consts.SOLMintStr: amount(25_000_000, consts.SOLDecimals), // 0.025
			},
		},
		{
			Timestamp: 1700008000, // now
			Balances: map[string]types.Amount{
				consts.SOLMintStr:  amount(8_984_229, consts.SOLDecimals), // 0.008984229
				consts.USDCMintStr: amount(2_000_000, consts.USDCDecimals),
			},
		},
	}

	points := a.Annotate(context.Background(), states)
	require.Equal(t, 2, len(points))

	// 历史桶：按时间戳定位采样点（1700003600 → 第 2 个点，价格 62）
	first := points[0]
	assert.Equal(t, int64(1700003600), first.Timestamp)
	assert.InDelta(t, 62, first.Balances[consts.SOLMintStr].Price, 1e-9)
	assert.InDelta(t, 0.025*62, first.UsdValue, 1e-9)

	// 末尾快照：实时报价（SOL 65，USDC 对自身恒为 1）
	last := points[1]
	assert.InDelta(t, 65, last.Balances[consts.SOLMintStr].Price, 1e-9)
	assert.InDelta(t, 1, last.Balances[consts.USDCMintStr].Price, 1e-9)
	assert.InDelta(t, 0.008984229*65+2.0*1, last.UsdValue, 1e-9)
}

// 测试无映射资产：不询价、不计价、不出现在任何输出点
func TestAnnotate_UnmappedAsset(t *testing.T) {
	hist := &fakeHist{series: map[string][]pricing.PricePoint{
		"solana": {{Timestamp: 1700000000, Price: 60}, {Timestamp: 1700003600, Price: 60}},
	}}
	a := &Annotator{Hist: hist, Spot: &fakeSpot{quotes: map[string]float64{consts.SOLMintStr: 60}}, Book: testBook()}

	states := []domain.BalanceState{
		{
			Timestamp: 1700000000,
			Balances: map[string]types.Amount{
				consts.SOLMintStr: amount(1_000_000_000, consts.SOLDecimals),
				unmappedMint:      amount(500, 0),
			},
		},
		{
			Timestamp: 1700003600,
			Balances: map[string]types.Amount{
				consts.SOLMintStr: amount(1_000_000_000, consts.SOLDecimals),
				unmappedMint:      amount(500, 0),
			},
		},
	}

	points := a.Annotate(context.Background(), states)
	require.Equal(t, 2, len(points))
	for _, p := range points {
		_, ok := p.Balances[unmappedMint]
		assert.False(t, ok, "无映射资产不应出现在计价持仓中")
		assert.InDelta(t, 60.0, p.UsdValue, 1e-9, "美元总值只应包含可定价资产")
	}
	assert.NotContains(t, hist.calls, unmappedMint, "无映射资产不应触发历史询价")
}

// 测试价格未解析：实时报价为 0 的资产从末尾快照剔除
func TestAnnotate_UnresolvedSpot(t *testing.T) {
	a := &Annotator{
		Hist: &fakeHist{},
		Spot: &fakeSpot{quotes: map[string]float64{}}, // SOL 报价缺失 → 0
		Book: testBook(),
	}

	states := []domain.BalanceState{
		{
			Timestamp: 1700000000,
			Balances: map[string]types.Amount{
				consts.SOLMintStr:  amount(1_000_000_000, consts.SOLDecimals),
				consts.USDCMintStr: amount(3_000_000, consts.USDCDecimals),
			},
		},
	}

	points := a.Annotate(context.Background(), states)
	require.Equal(t, 1, len(points))

	_, ok := points[0].Balances[consts.SOLMintStr]
	assert.False(t, ok, "报价为 0 的资产应被剔除而非计为 0")
	assert.InDelta(t, 3.0, points[0].UsdValue, 1e-9, "USDC 对自身恒为 1")
}

// 测试历史价格拉取失败：只丢弃该资产的贡献，序列本身不中断
func TestAnnotate_HistFailure(t *testing.T) {
	hist := &fakeHist{err: assert.AnError}
	a := &Annotator{Hist: hist, Spot: &fakeSpot{quotes: map[string]float64{consts.SOLMintStr: 60}}, Book: testBook()}

	states := []domain.BalanceState{
		{Timestamp: 1700000000, Balances: map[string]types.Amount{consts.SOLMintStr: amount(1_000_000_000, consts.SOLDecimals)}},
		{Timestamp: 1700003600, Balances: map[string]types.Amount{consts.SOLMintStr: amount(1_000_000_000, consts.SOLDecimals)}},
	}

	points := a.Annotate(context.Background(), states)
	require.Equal(t, 2, len(points), "历史价格失败不应中断序列")
	assert.Empty(t, points[0].Balances, "历史桶中失败资产应被剔除")
	assert.Zero(t, points[0].UsdValue)
	// 末尾快照走实时报价，不受历史失败影响
	assert.InDelta(t, 60.0, points[1].UsdValue, 1e-9)
}

// 测试时间戳越过序列末尾：越界下标视为价格未解析
func TestAnnotate_OutOfRangeIndex(t *testing.T) {
	hist := &fakeHist{series: map[string][]pricing.PricePoint{
		"solana": {{Timestamp: 1700000000, Price: 60}, {Timestamp: 1700003600, Price: 62}},
	}}
	a := &Annotator{Hist: hist, Spot: &fakeSpot{quotes: map[string]float64{consts.SOLMintStr: 60}}, Book: testBook()}

	states := []domain.BalanceState{
		{Timestamp: 1700050000, Balances: map[string]types.Amount{consts.SOLMintStr: amount(1_000_000_000, consts.SOLDecimals)}},
		{Timestamp: 1700060000, Balances: map[string]types.Amount{consts.SOLMintStr: amount(1_000_000_000, consts.SOLDecimals)}},
	}

	points := a.Annotate(context.Background(), states)
	require.Equal(t, 2, len(points))
	assert.Empty(t, points[0].Balances, "越界时间戳的历史桶应剔除该资产")
}

// 测试空输入
func TestAnnotate_Empty(t *testing.T) {
	a := &Annotator{Hist: &fakeHist{}, Spot: &fakeSpot{}, Book: testBook()}
	assert.Empty(t, a.Annotate(context.Background(), nil))
}

// 测试采样间隔推断与下标定位
func TestPriceSeries_At(t *testing.T) {
	s := newPriceSeries([]pricing.PricePoint{
		{Timestamp: 1000, Price: 10},
		{Timestamp: 2000, Price: 20},
		{Timestamp: 3000, Price: 30},
	})
	require.NotNil(t, s)

	p, ok := s.At(1000)
	assert.True(t, ok)
	assert.InDelta(t, 10, p, 1e-9)

	// 桶内任意时刻取左侧采样点
	p, ok = s.At(2999)
	assert.True(t, ok)
	assert.InDelta(t, 20, p, 1e-9)

	_, ok = s.At(999)
	assert.False(t, ok, "序列起点之前应视为未解析")
	_, ok = s.At(4000)
	assert.False(t, ok, "序列末尾之后应视为未解析")

	assert.Nil(t, newPriceSeries(nil), "空序列不应构造出对象")
}
