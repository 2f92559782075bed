package domain

import (
	"fmt"
	"strconv"
	"strings"

	"solana-mirror/internal/types"
)

// BalanceState 表示某一时刻主体账户的完整持仓快照（全部非零资产，而非增量）。
type BalanceState struct {
	Timestamp int64                   `json:"timestamp"`
	Balances  map[string]types.Amount `json:"balances"`
}

// AmountWithPrice 是带美元单价的持仓数量。
type AmountWithPrice struct {
	Amount types.Amount `json:"amount"`
	Price  float64      `json:"price"`
}

// ChartPoint 表示图表序列中的一个点：重采样后的快照加上价格与合计美元价值。
// 无法定价的资产直接从 Balances 中剔除，不以 0 价格污染 UsdValue。
type ChartPoint struct {
	Timestamp int64                      `json:"timestamp"`
	Balances  map[string]AmountWithPrice `json:"balances"`
	UsdValue  float64                    `json:"usdValue"`
}

// TimeframeUnit 表示重采样的时间桶宽度单位。
type TimeframeUnit string

const (
	TimeframeHour TimeframeUnit = "h"
	TimeframeDay  TimeframeUnit = "d"
)

// Width 返回桶宽度（秒）。
func (u TimeframeUnit) Width() int64 {
	if u == TimeframeHour {
		return 3600
	}
	return 86400
}

// ParseTimeframe 解析形如 "30d"、"24h" 的时间范围参数，返回桶数与单位。
func ParseTimeframe(s string) (int, TimeframeUnit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return 0, "", fmt.Errorf("invalid timeframe %q", s)
	}
	unit := TimeframeUnit(s[len(s)-1:])
	if unit != TimeframeHour && unit != TimeframeDay {
		return 0, "", fmt.Errorf("invalid timeframe unit %q", s)
	}
	count, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || count <= 0 {
		return 0, "", fmt.Errorf("invalid timeframe count %q", s)
	}
	return count, unit, nil
}
