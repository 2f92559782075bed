package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试映射查询：有映射返回标识，无映射与空标识都视为未命中
func TestPriceBook_PriceID(t *testing.T) {
	book := NewPriceBook(map[string]TokenEntry{
		"mint-a": {ID: "solana", Symbol: "SOL"},
		"mint-b": {Symbol: "XXX"}, // 无 ID
	})

	id, ok := book.PriceID("mint-a")
	assert.True(t, ok)
	assert.Equal(t, "solana", id)

	_, ok = book.PriceID("mint-b")
	assert.False(t, ok, "空 ID 应视为无映射")
	_, ok = book.PriceID("mint-c")
	assert.False(t, ok)

	assert.Equal(t, 2, book.Len())
}

// 测试从 JSON 文件加载
func TestLoadPriceBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	content := `{
		"So11111111111111111111111111111111111111112": {"id": "solana", "name": "Solana", "symbol": "SOL"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	book, err := LoadPriceBook(path)
	require.NoError(t, err)

	id, ok := book.PriceID("So11111111111111111111111111111111111111112")
	assert.True(t, ok)
	assert.Equal(t, "solana", id)
}

// 测试加载失败：文件缺失与非法 JSON 均报错
func TestLoadPriceBook_Errors(t *testing.T) {
	_, err := LoadPriceBook(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o644))
	_, err = LoadPriceBook(path)
	assert.Error(t, err)
}

// 测试 nil 映射兜底
func TestNewPriceBook_Nil(t *testing.T) {
	book := NewPriceBook(nil)
	assert.Equal(t, 0, book.Len())
	_, ok := book.PriceID("anything")
	assert.False(t, ok)
}
