package mq

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// BalanceUpdateEvent 是发往下游的余额变更事件（JSON 编码，供 Web 端等消费方直接使用）。
type BalanceUpdateEvent struct {
	Owner      string   `json:"owner"`     // 主体账户地址
	Mint       string   `json:"mint"`      // 资产标识（原生 SOL 为哨兵地址）
	PreAmount  *big.Int `json:"pre"`       // 交易前最小单位数量
	PostAmount *big.Int `json:"post"`      // 交易后最小单位数量
	PreUi      float64  `json:"preUi"`     // 交易前可读数量
	PostUi     float64  `json:"postUi"`    // 交易后可读数量
	BlockTime  int64    `json:"blockTime"` // Unix 秒
	Signature  string   `json:"signature"` // 所属交易签名
}

// Encode 序列化事件为 Kafka 消息体。
func (e *BalanceUpdateEvent) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode balance event: %w", err)
	}
	return data, nil
}
