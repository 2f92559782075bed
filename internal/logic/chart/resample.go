package chart

import (
	"time"

	"solana-mirror/internal/domain"
)

// MaxHourlyBuckets 是小时级重采样支持的最大桶数（90 天）。
// 超出后下游历史价格源只有天级粒度，小时图无意义，直接拒绝而非静默降级。
const MaxHourlyBuckets = 90 * 24

// Resample 将不规则的快照序列对齐到固定宽度的时间桶网格。
//
// 网格：width = unit 对应秒数，finalBoundary = floor(now/width)*width，
// initialBoundary = finalBoundary - count*width；桶目标点为
// initialBoundary+width ... finalBoundary 共 count 个，之后追加一条
// 携带真实 now 时间戳与最新持仓的合成尾点，保证序列末尾永不过期。
//
// 每个目标点向前扫描，找到第一个 timestamp >= target 的快照，
// 取其前一个快照（即"截至 target 的最近已知状态"）改写时间戳为 target 输出；
// 恰好落在桶边界上的交易不计入该边界（排他匹配）。账户历史尚未开始的桶
// 不输出任何条目。桶内无新活动时延续上一已知状态，即 forward-fill。
//
// 边界情况：空历史返回空序列；unit 为小时且 count > MaxHourlyBuckets
// 时返回空序列，均不报错。
func Resample(states []domain.BalanceState, unit domain.TimeframeUnit, count int, now time.Time) []domain.BalanceState {
	if len(states) == 0 || count <= 0 {
		return nil
	}
	if unit == domain.TimeframeHour && count > MaxHourlyBuckets {
		return nil
	}

	width := unit.Width()
	nowTs := now.Unix()
	finalBoundary := nowTs / width * width
	initialBoundary := finalBoundary - int64(count)*width

	// 合成尾点：真实 now 时间戳 + 最新持仓，保证 now 总是可表示的
	synthetic := domain.BalanceState{
		Timestamp: nowTs,
		Balances:  states[len(states)-1].Balances,
	}
	all := make([]domain.BalanceState, 0, len(states)+1)
	all = append(all, states...)
	all = append(all, synthetic)

	out := make([]domain.BalanceState, 0, count+1)
	cursor := 0

	for i := 1; i <= count; i++ {
		target := initialBoundary + int64(i)*width

		// 目标点单调递增，匹配下标单调不减，cursor 只前进
		idx := -1
		for j := cursor; j < len(all); j++ {
			if all[j].Timestamp >= target {
				idx = j
				break
			}
		}
		if idx <= 0 {
			// idx == 0：账户在 target 之前没有任何历史，跳过该桶；
			// idx == -1 不会出现（合成尾点时间戳 >= finalBoundary >= target）
			continue
		}

		out = append(out, domain.BalanceState{
			Timestamp: target,
			Balances:  all[idx-1].Balances,
		})
		cursor = idx - 1
	}

	return append(out, synthetic)
}
