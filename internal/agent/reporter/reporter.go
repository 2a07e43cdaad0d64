package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/syslens/syslens-probe/internal/agent/collector"
	"github.com/syslens/syslens-probe/internal/config"
	"go.uber.org/zap"
)

// ErrNoEndpoint 未配置上报地址
var ErrNoEndpoint = errors.New("未配置心跳上报地址")

// Reporter 定义了快照上报器接口
type Reporter interface {
	Report(ctx context.Context, snapshot *collector.SystemSnapshot) error
}

// HTTPReporter 通过HTTP POST上报快照
type HTTPReporter struct {
	endpoint      string        // 上报地址
	client        *http.Client  // HTTP客户端
	timeout       time.Duration // 请求超时时间
	retryCount    int           // 重试次数
	retryInterval time.Duration // 重试间隔
	authToken     string        // 认证令牌
	userAgent     string

	encoder payloadEncoder
	logger  *zap.Logger
}

// NewHTTPReporter 创建一个新的HTTP上报器
func NewHTTPReporter(endpoint string, options ...func(*HTTPReporter)) *HTTPReporter {
	r := &HTTPReporter{
		endpoint:      endpoint,
		retryCount:    0,
		retryInterval: 1 * time.Second,
		userAgent:     "SysLens-Probe",
		client:        &http.Client{},
		timeout:       10 * time.Second,
		encoder: payloadEncoder{
			security: config.SecurityConfig{
				Encryption:  config.EncryptionConfig{Algorithm: "aes-256-gcm"},
				Compression: config.CompressionConfig{Algorithm: "gzip", Level: 6},
			},
		},
		logger: zap.NewNop(),
	}

	// 应用选项
	for _, option := range options {
		option(r)
	}

	// 复制客户端后再设置超时，不修改调用方传入的客户端
	client := *r.client
	client.Timeout = r.timeout
	r.client = &client

	return r
}

// WithRetryCount 设置重试次数
func WithRetryCount(count int) func(*HTTPReporter) {
	return func(r *HTTPReporter) {
		if count >= 0 {
			r.retryCount = count
		}
	}
}

// WithRetryInterval 设置重试间隔
func WithRetryInterval(interval time.Duration) func(*HTTPReporter) {
	return func(r *HTTPReporter) {
		if interval > 0 {
			r.retryInterval = interval
		}
	}
}

// WithTimeout 设置HTTP请求超时时间
func WithTimeout(timeout time.Duration) func(*HTTPReporter) {
	return func(r *HTTPReporter) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithHTTPClient 使用给定客户端的Transport等设置，超时时间仍由WithTimeout决定
func WithHTTPClient(client *http.Client) func(*HTTPReporter) {
	return func(r *HTTPReporter) {
		if client != nil {
			r.client = client
		}
	}
}

// WithSecurityConfig 设置压缩和加密配置
func WithSecurityConfig(secConfig *config.SecurityConfig) func(*HTTPReporter) {
	return func(r *HTTPReporter) {
		if secConfig != nil {
			r.encoder.security = *secConfig
		}
	}
}

// WithAuthToken 设置认证令牌
func WithAuthToken(token string) func(*HTTPReporter) {
	return func(r *HTTPReporter) {
		r.authToken = token
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *zap.Logger) func(*HTTPReporter) {
	return func(r *HTTPReporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Endpoint 返回上报地址
func (r *HTTPReporter) Endpoint() string {
	return r.endpoint
}

// Report 将快照上报到服务器，失败时按配置重试
func (r *HTTPReporter) Report(ctx context.Context, snapshot *collector.SystemSnapshot) error {
	if r.endpoint == "" {
		return ErrNoEndpoint
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("数据序列化失败: %w", err)
	}

	// 压缩和加密数据
	body, contentType, err := r.encoder.encode(jsonData)
	if err != nil {
		return fmt.Errorf("数据处理失败: %w", err)
	}

	requestID := uuid.NewString()

	var lastErr error
	for i := 0; i <= r.retryCount; i++ {
		if i > 0 {
			r.logger.Warn("心跳上报重试",
				zap.Int("attempt", i),
				zap.Int("retry_count", r.retryCount),
				zap.Duration("delay", r.retryInterval))

			select {
			case <-ctx.Done():
				return fmt.Errorf("心跳上报已取消: %w", ctx.Err())
			case <-time.After(r.retryInterval):
			}
		}

		lastErr = r.send(ctx, body, contentType, requestID)
		if lastErr == nil {
			return nil
		}
		r.logger.Warn("心跳上报失败", zap.String("endpoint", r.endpoint), zap.Error(lastErr))
	}

	if r.retryCount > 0 {
		return fmt.Errorf("已重试%d次: %w", r.retryCount, lastErr)
	}
	return lastErr
}

// send 发送一次请求
func (r *HTTPReporter) send(ctx context.Context, body []byte, contentType, requestID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	if r.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.authToken)
	}

	// 添加数据处理标记
	if r.encoder.security.Compression.Enabled {
		req.Header.Set("X-Compressed", "gzip")
	}
	if r.encoder.security.Encryption.Enabled {
		req.Header.Set("X-Encrypted", "true")
	}

	startTime := time.Now()
	resp, err := r.client.Do(req)
	requestTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("HTTP请求失败 (耗时: %v): %w", requestTime, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		r.logger.Debug("读取响应体失败",
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", requestID),
			zap.Error(err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		r.logger.Info("心跳上报成功",
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", requestTime),
			zap.String("request_id", requestID))
		return nil
	}

	return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
}

// StatusError 服务器返回非2xx状态码
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("服务器返回错误状态码: %d", e.StatusCode)
	}
	return fmt.Sprintf("服务器返回错误状态码: %d，响应: %s", e.StatusCode, e.Body)
}
