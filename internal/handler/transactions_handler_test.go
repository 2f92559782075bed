package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试截取区间解析与越界收敛
func TestParseIndexRange(t *testing.T) {
	from, to, err := parseIndexRange("0-5", 10)
	require.NoError(t, err)
	assert.Equal(t, 0, from)
	assert.Equal(t, 5, to)

	// 越界自动收敛到总数
	from, to, err = parseIndexRange("3-100", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, from)
	assert.Equal(t, 10, to)

	from, to, err = parseIndexRange("50-60", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, from)
	assert.Equal(t, 10, to, "整体越界应收敛为空区间")
}

// 测试非法区间
func TestParseIndexRange_Invalid(t *testing.T) {
	for _, s := range []string{"", "5", "a-b", "5-a", "-1-3", "5-2"} {
		_, _, err := parseIndexRange(s, 10)
		assert.Error(t, err, "输入 %q 应报错", s)
	}
}
