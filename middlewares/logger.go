package middlewares

import (
	"time"

	"github.com/Tarrras/CurrencyDashboard/config"
	"github.com/Tarrras/CurrencyDashboard/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 每个请求记一条访问日志；websocket 连接会挂很久，关闭时才会落到这里
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next() //继续后面的处理

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", c.ClientIP()),
			zap.String("version", config.Version),
		}
		// 搜索接口靠 query 区分请求，空的就不占字段
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		log.L().Info("request", fields...)
	}
}
