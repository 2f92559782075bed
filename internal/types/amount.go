package types

import (
	"math"
	"math/big"
)

// Amount 表示某个资产的持仓数量：
//   - Raw：链上最小单位的原始数量（任意精度整数，如 lamports）
//   - Formatted：按资产精度换算后的可读数量（Raw / 10^decimals）
//
// 两个字段在构造时一次性换算完成，流水线内部不再做字符串/整数互转。
type Amount struct {
	Raw       *big.Int `json:"amount"`
	Formatted float64  `json:"formatted"`
}

// ZeroAmount 返回数值为 0 的 Amount（Raw 非 nil，便于序列化与比较）。
func ZeroAmount() Amount {
	return Amount{Raw: new(big.Int), Formatted: 0}
}

// AmountFromRaw 根据最小单位数量与精度构造 Amount。
func AmountFromRaw(raw *big.Int, decimals uint8) Amount {
	if raw == nil {
		return ZeroAmount()
	}
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(raw),
		big.NewFloat(math.Pow10(int(decimals))),
	).Float64()
	return Amount{Raw: raw, Formatted: f}
}

// AmountFromString 解析最小单位数量字符串（RPC 返回格式）并构造 Amount。
// 解析失败时返回 0 值，不报错：余额字段缺失/畸形按"无余额"降级处理。
func AmountFromString(raw string, decimals uint8) Amount {
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return ZeroAmount()
	}
	return AmountFromRaw(n, decimals)
}

// AmountFromUint64 根据 uint64 最小单位数量构造 Amount（SOL lamports 余额走此路径）。
func AmountFromUint64(raw uint64, decimals uint8) Amount {
	return AmountFromRaw(new(big.Int).SetUint64(raw), decimals)
}

// IsZero 判断可读数量是否为 0。
// 余额快照中资产的去留以 Formatted 为准，与原始精度无关。
func (a Amount) IsZero() bool {
	return a.Formatted == 0
}
