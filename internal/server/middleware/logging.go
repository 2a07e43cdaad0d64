package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// slowRequestThreshold 超过该耗时的请求记为慢请求，采集本身包含多次命令调用
const slowRequestThreshold = 2 * time.Second

// Logging 日志中间件
// 记录HTTP请求的结束状态和处理时间，并将日志记录器添加到上下文
func Logging(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetString("request_id")
		reqLogger := logger.With(zap.String("request_id", requestID))

		// 将日志记录器添加到上下文
		c.Set("logger", reqLogger)

		// 处理请求
		c.Next()

		// 计算处理时间
		duration := time.Since(start)
		statusCode := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", statusCode),
			zap.Duration("latency", duration),
		}

		switch {
		case statusCode >= 500:
			reqLogger.Error("HTTP请求失败", fields...)
		case statusCode >= 400:
			reqLogger.Warn("HTTP请求无效", fields...)
		default:
			reqLogger.Info("HTTP请求完成", fields...)
		}

		// 记录慢请求
		if duration > slowRequestThreshold {
			reqLogger.Warn("慢请求",
				zap.String("method", c.Request.Method),
				zap.String("path", path),
				zap.Duration("latency", duration))
		}
	}
}
