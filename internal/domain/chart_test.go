package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试时间范围参数解析
func TestParseTimeframe(t *testing.T) {
	count, unit, err := ParseTimeframe("30d")
	require.NoError(t, err)
	assert.Equal(t, 30, count)
	assert.Equal(t, TimeframeDay, unit)

	count, unit, err = ParseTimeframe("24h")
	require.NoError(t, err)
	assert.Equal(t, 24, count)
	assert.Equal(t, TimeframeHour, unit)

	// 大小写与空白容错
	count, unit, err = ParseTimeframe(" 7D ")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.Equal(t, TimeframeDay, unit)
}

// 测试非法输入
func TestParseTimeframe_Invalid(t *testing.T) {
	for _, s := range []string{"", "d", "30", "30x", "-5d", "0h", "abch"} {
		_, _, err := ParseTimeframe(s)
		assert.Error(t, err, "输入 %q 应报错", s)
	}
}

// 测试桶宽度
func TestTimeframeUnit_Width(t *testing.T) {
	assert.Equal(t, int64(3600), TimeframeHour.Width())
	assert.Equal(t, int64(86400), TimeframeDay.Width())
}
