// Package logging 根据配置创建zap日志记录器
package logging

import (
	"fmt"
	"strings"

	"github.com/syslens/syslens-probe/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 初始化日志记录器
// 日志默认输出到stderr，避免与命令的标准输出混在一起
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	// 创建日志配置
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))

	if strings.EqualFold(cfg.Format, "console") {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	// 设置日志输出
	if cfg.File != "" {
		zapConfig.OutputPaths = []string{cfg.File}
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("创建日志记录器失败: %w", err)
	}

	return logger, nil
}

// ParseLevel 解析日志级别，未知值按info处理
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
