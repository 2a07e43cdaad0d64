package collector

// SystemSnapshot 单次采集得到的完整主机快照
type SystemSnapshot struct {
	Hostname  string        `json:"hostname"`
	Timestamp string        `json:"timestamp"`
	Memory    MemoryStats   `json:"memory"`
	Load      [3]float64    `json:"load"`
	Uptime    string        `json:"uptime"`
	Disk      DiskStats     `json:"disk"`
	Processes []ProcessInfo `json:"processes"`

	// 由告警评估填充
	Alerts []Alert `json:"alerts"`
	Status Status  `json:"status,omitempty"`
}

// MemoryStats 内存使用情况，单位GiB，保留一位小数
type MemoryStats struct {
	TotalGB     float64 `json:"total_gb"`
	UsedGB      float64 `json:"used_gb"`
	AvailableGB float64 `json:"available_gb"`
	Percent     float64 `json:"percent"`
}

// DiskStats 根文件系统使用情况，容量字段保留df输出的人类可读单位
type DiskStats struct {
	Total     string `json:"total"`
	Used      string `json:"used"`
	Available string `json:"available"`
	Percent   int    `json:"percent"`
}

// UptimeStats uptime命令的解析结果
type UptimeStats struct {
	Uptime string
	Load   [3]float64
}

// ProcessInfo 单个进程的采样信息
type ProcessInfo struct {
	User    string  `json:"user"`
	PID     int     `json:"pid"`
	CPU     float64 `json:"cpu"`
	Mem     float64 `json:"mem"`
	RSSKB   int64   `json:"rss_kb"`
	Command string  `json:"command"`
}

// AlertLevel 告警级别
type AlertLevel string

const (
	LevelWarning  AlertLevel = "warning"
	LevelCritical AlertLevel = "critical"
)

// AlertType 告警来源指标
type AlertType string

const (
	TypeMemory AlertType = "memory"
	TypeDisk   AlertType = "disk"
	TypeLoad   AlertType = "load"
)

// Alert 单条告警
type Alert struct {
	Level   AlertLevel `json:"level"`
	Type    AlertType  `json:"type"`
	Message string     `json:"message"`
}

// Status 快照的整体健康状态
type Status string

const (
	StatusHealthy Status = "healthy"
	StatusWarning Status = "warning"
)
