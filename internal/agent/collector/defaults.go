package collector

// MetricKind 子探针的指标种类
type MetricKind int

const (
	KindMemory MetricKind = iota
	KindLoad
	KindUptime
	KindDisk
	KindProcesses
	KindHostname
)

// String 返回指标种类名称，用于日志
func (k MetricKind) String() string {
	switch k {
	case KindMemory:
		return "memory"
	case KindLoad:
		return "load"
	case KindUptime:
		return "uptime"
	case KindDisk:
		return "disk"
	case KindProcesses:
		return "processes"
	case KindHostname:
		return "hostname"
	default:
		return "unknown"
	}
}

// defaultOf 返回探针不可用或输出无法解析时使用的默认值
// 所有降级默认值只在这里定义
func defaultOf(kind MetricKind) interface{} {
	switch kind {
	case KindMemory:
		return MemoryStats{}
	case KindLoad:
		return [3]float64{0, 0, 0}
	case KindUptime:
		return "unknown"
	case KindDisk:
		return DiskStats{Total: "0", Used: "0", Available: "0", Percent: 0}
	case KindProcesses:
		return []ProcessInfo{}
	case KindHostname:
		return "unknown"
	default:
		return nil
	}
}

func defaultMemory() MemoryStats {
	return defaultOf(KindMemory).(MemoryStats)
}

func defaultLoad() [3]float64 {
	return defaultOf(KindLoad).([3]float64)
}

func defaultUptime() string {
	return defaultOf(KindUptime).(string)
}

func defaultDisk() DiskStats {
	return defaultOf(KindDisk).(DiskStats)
}

func defaultProcesses() []ProcessInfo {
	return defaultOf(KindProcesses).([]ProcessInfo)
}

func defaultHostname() string {
	return defaultOf(KindHostname).(string)
}
