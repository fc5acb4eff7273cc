package utils

// 展示层的格式化辅助函数
import (
	"fmt"
	"time"
)

// FormatTimestamp 毫秒时间戳转 HH:mm:ss，0 表示从未刷新
func FormatTimestamp(ts int64) string {
	if ts == 0 {
		return "never"
	}
	return time.UnixMilli(ts).Format("15:04:05")
}

// FormatRate 按数值大小选择精度：1 显示 1.00，大额两位，普通四位
func FormatRate(rate float64) string {
	switch {
	case rate == 1.0:
		return "1.00"
	case rate > 1000:
		return fmt.Sprintf("%.2f", rate)
	case rate > 0:
		return fmt.Sprintf("%.4f", rate)
	default:
		return "—"
	}
}

// FormatChange 正数带加号
func FormatChange(change float64) string {
	switch {
	case change > 0:
		return fmt.Sprintf("+%.2f%%", change)
	case change < 0:
		return fmt.Sprintf("%.2f%%", change)
	default:
		return "0.00%"
	}
}

// CurrencySymbol 常见币种的符号，查不到就取代码首字母
func CurrencySymbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	case "BTC":
		return "₿"
	case "ETH":
		return "Ξ"
	default:
		if code == "" {
			return ""
		}
		return code[:1]
	}
}
