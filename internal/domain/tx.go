package domain

import (
	"solana-mirror/internal/types"
)

// RawTokenBalance 表示交易 meta 中一条 SPL Token 余额记录（pre 或 post 列表中的一项）。
type RawTokenBalance struct {
	AccountIndex int    `json:"accountIndex"`
	Mint         string `json:"mint"`
	Owner        string `json:"owner"`
	Amount       string `json:"amount"`   // 最小单位原始数量
	Decimals     uint8  `json:"decimals"` // Token 精度
}

// RawTransactionMeta 表示交易执行后的元信息（余额、日志、失败标记）。
type RawTransactionMeta struct {
	Err               any               `json:"err"` // nil 表示交易成功
	PreBalances       []uint64          `json:"preBalances"`
	PostBalances      []uint64          `json:"postBalances"`
	PreTokenBalances  []RawTokenBalance `json:"preTokenBalances"`
	PostTokenBalances []RawTokenBalance `json:"postTokenBalances"`
	LogMessages       []string          `json:"logMessages"`
}

// RawTransaction 是链上交易在采集边界上的统一结构。
// 由 rpcclient 从 RPC 响应一次性转换而来，解析逻辑不感知 SDK 类型。
type RawTransaction struct {
	Signatures  []string            `json:"signatures"`
	BlockTime   int64               `json:"blockTime"` // Unix 秒；不可用时为 -1
	AccountKeys []string            `json:"accountKeys"`
	Meta        *RawTransactionMeta `json:"meta"`
}

// Failed 判断交易是否执行失败（meta.err 非空）。
func (tx *RawTransaction) Failed() bool {
	return tx.Meta != nil && tx.Meta.Err != nil
}

// BalanceChange 表示某资产在一笔交易前后的余额变化。
type BalanceChange struct {
	Pre  types.Amount `json:"pre"`
	Post types.Amount `json:"post"`
}

// ParsedTransaction 表示以某个主体账户视角归一化后的交易：
// 只保留该主体余额发生变化的资产，外加从日志解出的指令名列表。
// 构造后不可变，由余额状态推演按时间顺序消费一次。
type ParsedTransaction struct {
	BlockTime          int64                    `json:"blockTime"`
	Signatures         []string                 `json:"signatures"`
	Logs               []string                 `json:"logs"`
	Balances           map[string]BalanceChange `json:"balances"` // key 为 mint 地址（原生 SOL 用哨兵地址）
	ParsedInstructions []string                 `json:"parsedInstructions"`
}
