package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求ID使用的HTTP头
const RequestIDHeader = "X-Request-ID"

// RequestID 请求ID中间件
// 为每个请求生成唯一ID并添加到上下文和响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 尝试从请求头获取请求ID
		requestID := c.GetHeader(RequestIDHeader)

		// 如果请求头中没有请求ID，则生成一个
		if requestID == "" {
			requestID = uuid.NewString()
		}

		// 添加到上下文
		c.Set("request_id", requestID)

		// 添加到响应头
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}
