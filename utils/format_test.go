package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want string
	}{
		{"基准货币本身", 1.0, "1.00"},
		{"大额两位小数", 150345.678, "150345.68"},
		{"普通四位小数", 0.8512345, "0.8512"},
		{"零值没数据", 0, "—"},
		{"负数没数据", -1, "—"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRate(tt.rate))
		})
	}
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+1.25%", FormatChange(1.25))
	assert.Equal(t, "-0.50%", FormatChange(-0.5))
	assert.Equal(t, "0.00%", FormatChange(0))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "never", FormatTimestamp(0))
	assert.NotEqual(t, "never", FormatTimestamp(1700000000000))
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "$", CurrencySymbol("USD"))
	assert.Equal(t, "€", CurrencySymbol("EUR"))
	assert.Equal(t, "₿", CurrencySymbol("BTC"))
	assert.Equal(t, "K", CurrencySymbol("KRW")) // 未知币种取首字母
	assert.Equal(t, "", CurrencySymbol(""))
}
