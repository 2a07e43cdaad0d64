package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 环境变量名
const (
	EnvHeartbeatEndpoint = "MONITOR_HEARTBEAT_ENDPOINT"
	EnvHeartbeatToken    = "MONITOR_HEARTBEAT_TOKEN"
	EnvMemoryWarning     = "MONITOR_MEMORY_WARNING"
	EnvMemoryCritical    = "MONITOR_MEMORY_CRITICAL"
	EnvDiskWarning       = "MONITOR_DISK_WARNING"
	EnvDiskCritical      = "MONITOR_DISK_CRITICAL"
	EnvLoadWarning       = "MONITOR_LOAD_WARNING"
	EnvLogLevel          = "MONITOR_LOG_LEVEL"
)

// DefaultProbeConfig 返回默认配置
func DefaultProbeConfig() *ProbeConfig {
	cfg := &ProbeConfig{}

	// 心跳默认配置
	cfg.Heartbeat.Timeout = 10
	cfg.Heartbeat.RetryCount = 0
	cfg.Heartbeat.RetryInterval = 1
	cfg.Heartbeat.ProcessLimit = 5

	// 告警阈值
	cfg.Thresholds.MemoryWarning = 80
	cfg.Thresholds.MemoryCritical = 90
	cfg.Thresholds.DiskWarning = 80
	cfg.Thresholds.DiskCritical = 90
	cfg.Thresholds.LoadWarning = 10

	// 采集默认配置
	cfg.Collection.CommandTimeout = 5
	cfg.Collection.ProcessLimit = 10

	// 安全默认配置
	cfg.Security.Encryption.Enabled = false
	cfg.Security.Encryption.Algorithm = "aes-256-gcm"
	cfg.Security.Compression.Enabled = false
	cfg.Security.Compression.Algorithm = "gzip"
	cfg.Security.Compression.Level = 6

	// 日志默认配置，命令行场景下只输出警告以上
	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "console"

	cfg.Server.HTTPAddr = "127.0.0.1:9100"

	return cfg
}

// LoadProbeConfig 加载配置
// path为空时依次查找默认位置，都不存在则使用默认配置；随后用环境变量覆盖
func LoadProbeConfig(path string) (*ProbeConfig, error) {
	cfg := DefaultProbeConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	// .env文件不存在时忽略
	_ = godotenv.Load()

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("读取环境变量失败: %w", err)
	}

	if err := validateProbeConfig(cfg); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return cfg, nil
}

// findConfigFile 查找默认位置的配置文件
func findConfigFile() string {
	possiblePaths := []string{
		"configs/probe.yaml",
		filepath.Join(os.Getenv("HOME"), ".syslens", "probe.yaml"),
		"/etc/syslens/probe.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// applyEnv 用环境变量覆盖配置
func applyEnv(cfg *ProbeConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHeartbeatEndpoint); ok && v != "" {
		cfg.Heartbeat.Endpoint = v
	}
	if v, ok := lookup(EnvHeartbeatToken); ok && v != "" {
		cfg.Heartbeat.Token = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	thresholds := []struct {
		name   string
		target *float64
	}{
		{EnvMemoryWarning, &cfg.Thresholds.MemoryWarning},
		{EnvMemoryCritical, &cfg.Thresholds.MemoryCritical},
		{EnvDiskWarning, &cfg.Thresholds.DiskWarning},
		{EnvDiskCritical, &cfg.Thresholds.DiskCritical},
		{EnvLoadWarning, &cfg.Thresholds.LoadWarning},
	}
	for _, t := range thresholds {
		v, ok := lookup(t.name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s 不是有效数字: %q", t.name, v)
		}
		*t.target = f
	}

	return nil
}

// validateProbeConfig 验证配置
func validateProbeConfig(cfg *ProbeConfig) error {
	// 验证告警阈值
	t := cfg.Thresholds
	if t.MemoryWarning <= 0 || t.MemoryCritical <= 0 || t.DiskWarning <= 0 || t.DiskCritical <= 0 {
		return fmt.Errorf("内存和磁盘阈值必须大于0")
	}
	if t.MemoryWarning > t.MemoryCritical {
		return fmt.Errorf("内存警告阈值(%v)不能大于严重阈值(%v)", t.MemoryWarning, t.MemoryCritical)
	}
	if t.DiskWarning > t.DiskCritical {
		return fmt.Errorf("磁盘警告阈值(%v)不能大于严重阈值(%v)", t.DiskWarning, t.DiskCritical)
	}
	if t.LoadWarning < 0 {
		return fmt.Errorf("负载阈值不能为负数")
	}

	// 验证心跳配置
	if cfg.Heartbeat.Timeout <= 0 {
		return fmt.Errorf("心跳超时时间必须大于0")
	}
	if cfg.Heartbeat.RetryCount < 0 {
		return fmt.Errorf("重试次数不能为负数")
	}
	if cfg.Heartbeat.RetryCount > 0 && cfg.Heartbeat.RetryInterval <= 0 {
		return fmt.Errorf("重试间隔必须大于0")
	}
	if cfg.Heartbeat.ProcessLimit < 0 || cfg.Collection.ProcessLimit < 0 {
		return fmt.Errorf("进程数量限制不能为负数")
	}

	// 验证采集配置
	if cfg.Collection.CommandTimeout <= 0 {
		return fmt.Errorf("命令超时时间必须大于0")
	}
	switch strings.ToLower(cfg.Collection.Platform) {
	case "", "linux", "darwin":
	default:
		return fmt.Errorf("不支持的平台: %s", cfg.Collection.Platform)
	}

	// 验证安全配置 (如果启用)
	if cfg.Security.Encryption.Enabled && cfg.Security.Encryption.Key == "" {
		return fmt.Errorf("加密已启用，但未配置密钥(security.encryption.key)")
	}

	return nil
}
