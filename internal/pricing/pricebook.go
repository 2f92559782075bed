package pricing

import (
	"encoding/json"
	"fmt"
	"os"
)

// TokenEntry 是价格源标识映射表中的一项。
type TokenEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// PriceBook 是 mint 地址 → 外部价格源标识的只读映射表。
// 映射是稀疏的：大量链上资产没有外部价格标识，查不到的资产由调用方跳过。
// 表内容从外部 JSON 文件加载，与流水线逻辑解耦，可独立刷新。
type PriceBook struct {
	entries map[string]TokenEntry
}

// NewPriceBook 用现成的映射构造 PriceBook（测试或嵌入场景）。
func NewPriceBook(entries map[string]TokenEntry) *PriceBook {
	if entries == nil {
		entries = map[string]TokenEntry{}
	}
	return &PriceBook{entries: entries}
}

// LoadPriceBook 从 JSON 文件加载映射表。
// 文件格式：{ "<mint>": {"id": "...", "name": "...", "symbol": "..."}, ... }
func LoadPriceBook(path string) (*PriceBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price book %s: %w", path, err)
	}
	var entries map[string]TokenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse price book %s: %w", path, err)
	}
	return NewPriceBook(entries), nil
}

// PriceID 返回 mint 对应的外部价格源标识；无映射时 ok 为 false。
func (b *PriceBook) PriceID(mint string) (string, bool) {
	e, ok := b.entries[mint]
	if !ok || e.ID == "" {
		return "", false
	}
	return e.ID, true
}

// Len 返回映射表条目数。
func (b *PriceBook) Len() int {
	return len(b.entries)
}
