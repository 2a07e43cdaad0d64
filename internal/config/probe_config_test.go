package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefaultProbeConfig(t *testing.T) {
	cfg := DefaultProbeConfig()

	if err := validateProbeConfig(cfg); err != nil {
		t.Fatalf("默认配置无效: %v", err)
	}
	if cfg.Heartbeat.Timeout != 10 || cfg.Heartbeat.ProcessLimit != 5 || cfg.Collection.ProcessLimit != 10 {
		t.Errorf("默认值异常: %+v %+v", cfg.Heartbeat, cfg.Collection)
	}
	want := ThresholdConfig{MemoryWarning: 80, MemoryCritical: 90, DiskWarning: 80, DiskCritical: 90, LoadWarning: 10}
	if cfg.Thresholds != want {
		t.Errorf("默认阈值 = %+v", cfg.Thresholds)
	}
}

func TestLoadProbeConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.yaml")
	content := `
heartbeat:
  endpoint: https://status.example.com/heartbeat
  token: file-token
  retry_count: 2
thresholds:
  memory_warning: 70
  load_warning: 4
collection:
  platform: darwin
  parallel: true
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// 清空可能存在的环境变量
	for _, key := range []string{EnvHeartbeatEndpoint, EnvHeartbeatToken, EnvMemoryWarning, EnvLoadWarning, EnvLogLevel} {
		t.Setenv(key, "")
	}

	cfg, err := LoadProbeConfig(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Heartbeat.Endpoint != "https://status.example.com/heartbeat" || cfg.Heartbeat.Token != "file-token" {
		t.Errorf("心跳配置 = %+v", cfg.Heartbeat)
	}
	if cfg.Heartbeat.Timeout != 10 {
		t.Errorf("未指定的字段应保留默认值, timeout = %d", cfg.Heartbeat.Timeout)
	}
	if cfg.Thresholds.MemoryWarning != 70 || cfg.Thresholds.MemoryCritical != 90 || cfg.Thresholds.LoadWarning != 4 {
		t.Errorf("阈值 = %+v", cfg.Thresholds)
	}
	if cfg.Collection.Platform != "darwin" || !cfg.Collection.Parallel {
		t.Errorf("采集配置 = %+v", cfg.Collection)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("日志级别 = %q", cfg.Logging.Level)
	}
}

func TestLoadProbeConfigErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := LoadProbeConfig(filepath.Join(dir, "missing.yaml")); err == nil {
			t.Error("期望返回错误")
		}
	})

	t.Run("YAML格式错误", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("heartbeat: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadProbeConfig(path); err == nil {
			t.Error("期望返回错误")
		}
	})

	t.Run("阈值倒置", func(t *testing.T) {
		path := filepath.Join(dir, "inverted.yaml")
		if err := os.WriteFile(path, []byte("thresholds:\n  disk_warning: 95\n  disk_critical: 90\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadProbeConfig(path)
		if err == nil || !strings.Contains(err.Error(), "磁盘") {
			t.Errorf("期望磁盘阈值错误, 实际 %v", err)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("覆盖配置", func(t *testing.T) {
		cfg := DefaultProbeConfig()
		cfg.Heartbeat.Endpoint = "https://from-file"

		err := applyEnv(cfg, mapLookup(map[string]string{
			EnvHeartbeatEndpoint: "https://from-env",
			EnvHeartbeatToken:    "secret",
			EnvMemoryWarning:     "75",
			EnvLoadWarning:       " 8.5 ",
			EnvLogLevel:          "DEBUG",
			EnvDiskCritical:      "",
		}))
		if err != nil {
			t.Fatalf("applyEnv失败: %v", err)
		}

		if cfg.Heartbeat.Endpoint != "https://from-env" || cfg.Heartbeat.Token != "secret" {
			t.Errorf("心跳配置 = %+v", cfg.Heartbeat)
		}
		if cfg.Thresholds.MemoryWarning != 75 || cfg.Thresholds.LoadWarning != 8.5 || cfg.Thresholds.DiskCritical != 90 {
			t.Errorf("阈值 = %+v", cfg.Thresholds)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("日志级别 = %q", cfg.Logging.Level)
		}
	})

	t.Run("无效数字", func(t *testing.T) {
		err := applyEnv(DefaultProbeConfig(), mapLookup(map[string]string{EnvDiskWarning: "eighty"}))
		if err == nil || !strings.Contains(err.Error(), EnvDiskWarning) {
			t.Errorf("期望返回包含变量名的错误, 实际 %v", err)
		}
	})
}

func TestValidateProbeConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ProbeConfig)
	}{
		{"超时为0", func(c *ProbeConfig) { c.Heartbeat.Timeout = 0 }},
		{"重试次数为负", func(c *ProbeConfig) { c.Heartbeat.RetryCount = -1 }},
		{"重试间隔为0", func(c *ProbeConfig) { c.Heartbeat.RetryCount = 1; c.Heartbeat.RetryInterval = 0 }},
		{"命令超时为0", func(c *ProbeConfig) { c.Collection.CommandTimeout = 0 }},
		{"未知平台", func(c *ProbeConfig) { c.Collection.Platform = "windows" }},
		{"加密缺少密钥", func(c *ProbeConfig) { c.Security.Encryption.Enabled = true }},
		{"内存阈值倒置", func(c *ProbeConfig) { c.Thresholds.MemoryWarning = 95 }},
		{"负载阈值为负", func(c *ProbeConfig) { c.Thresholds.LoadWarning = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultProbeConfig()
			tt.modify(cfg)
			if err := validateProbeConfig(cfg); err == nil {
				t.Error("期望验证失败")
			}
		})
	}
}
