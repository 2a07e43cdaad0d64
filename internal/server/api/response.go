package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse 统一的成功响应结构
type SuccessResponse struct {
	Status    string      `json:"status"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorResponse 统一的错误响应结构
type ErrorResponse struct {
	Error     string      `json:"error"`
	Code      int         `json:"code"`
	Message   string      `json:"message,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// RespondWithSuccess 返回统一格式的成功响应
func RespondWithSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Status:    "success",
		Data:      data,
		RequestID: requestIDOf(c),
	})
}

// RespondWithError 返回统一格式的错误响应
func RespondWithError(c *gin.Context, statusCode int, err error, message string) {
	errMsg := "未知错误"
	if err != nil {
		errMsg = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error:     errMsg,
		Code:      statusCode,
		Message:   message,
		RequestID: requestIDOf(c),
	})
}

// RespondWithValidationError 返回验证错误响应
func RespondWithValidationError(c *gin.Context, message string, details interface{}) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     "参数验证失败",
		Code:      http.StatusBadRequest,
		Message:   message,
		Details:   details,
		RequestID: requestIDOf(c),
	})
}

// requestIDOf 从上下文获取请求ID
func requestIDOf(c *gin.Context) string {
	requestID, _ := c.Get("request_id")
	requestIDStr, _ := requestID.(string)
	return requestIDStr
}
