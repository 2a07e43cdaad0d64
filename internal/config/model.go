package config

// ProbeConfig 探针配置结构
type ProbeConfig struct {
	Heartbeat  HeartbeatConfig  `yaml:"heartbeat"`
	Thresholds ThresholdConfig  `yaml:"thresholds"`
	Collection CollectionConfig `yaml:"collection"`
	Security   SecurityConfig   `yaml:"security"`
	Logging    LoggingConfig    `yaml:"logging"`
	Server     HTTPServerConfig `yaml:"server"`
}

// HeartbeatConfig 心跳上报配置
type HeartbeatConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Token         string `yaml:"token"`
	Timeout       int    `yaml:"timeout"` // 秒
	RetryCount    int    `yaml:"retry_count"`
	RetryInterval int    `yaml:"retry_interval"` // 秒
	ProcessLimit  int    `yaml:"process_limit"`
}

// ThresholdConfig 告警阈值
type ThresholdConfig struct {
	MemoryWarning  float64 `yaml:"memory_warning"`
	MemoryCritical float64 `yaml:"memory_critical"`
	DiskWarning    float64 `yaml:"disk_warning"`
	DiskCritical   float64 `yaml:"disk_critical"`
	LoadWarning    float64 `yaml:"load_warning"`
}

// CollectionConfig 采集配置
type CollectionConfig struct {
	// 为空时按运行时自动判断，可选linux或darwin
	Platform       string `yaml:"platform"`
	Parallel       bool   `yaml:"parallel"`
	CommandTimeout int    `yaml:"command_timeout"` // 秒
	ProcessLimit   int    `yaml:"process_limit"`
}

// SecurityConfig 上报数据的安全配置
type SecurityConfig struct {
	Encryption  EncryptionConfig  `yaml:"encryption"`
	Compression CompressionConfig `yaml:"compression"`
}

// EncryptionConfig 加密配置
type EncryptionConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Algorithm string `yaml:"algorithm"`
	Key       string `yaml:"key"`
}

// CompressionConfig 压缩配置
type CompressionConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Algorithm string `yaml:"algorithm"`
	Level     int    `yaml:"level"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
	Format string `yaml:"format"` // console 或 json
}

// HTTPServerConfig 状态接口的HTTP配置
type HTTPServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}
