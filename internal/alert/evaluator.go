// Package alert 根据阈值表对主机快照进行告警评估
package alert

import (
	"fmt"
	"strconv"

	"github.com/syslens/syslens-probe/internal/agent/collector"
)

// Thresholds 告警阈值表
// 内存和磁盘为百分比，负载为1分钟平均负载的原始值且只有警告级别
type Thresholds struct {
	MemoryWarning  float64 `json:"memory_warning"`
	MemoryCritical float64 `json:"memory_critical"`
	DiskWarning    float64 `json:"disk_warning"`
	DiskCritical   float64 `json:"disk_critical"`
	LoadWarning    float64 `json:"load_warning"`
}

// DefaultThresholds 返回默认阈值
func DefaultThresholds() Thresholds {
	return Thresholds{
		MemoryWarning:  80,
		MemoryCritical: 90,
		DiskWarning:    80,
		DiskCritical:   90,
		LoadWarning:    10,
	}
}

// Evaluator 告警评估器
type Evaluator struct {
	thresholds Thresholds
}

// NewEvaluator 创建告警评估器
func NewEvaluator(thresholds Thresholds) *Evaluator {
	return &Evaluator{thresholds: thresholds}
}

// Thresholds 返回当前使用的阈值
func (e *Evaluator) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate 依次检查内存、磁盘、负载，每项指标最多产生一条告警
func (e *Evaluator) Evaluate(snapshot *collector.SystemSnapshot) []collector.Alert {
	alerts := []collector.Alert{}
	if snapshot == nil {
		return alerts
	}

	memory := snapshot.Memory.Percent
	if level, ok := tier(memory, e.thresholds.MemoryWarning, e.thresholds.MemoryCritical); ok {
		alerts = append(alerts, collector.Alert{
			Level:   level,
			Type:    collector.TypeMemory,
			Message: fmt.Sprintf("Memory at %s%%", formatNumber(memory)),
		})
	}

	disk := float64(snapshot.Disk.Percent)
	if level, ok := tier(disk, e.thresholds.DiskWarning, e.thresholds.DiskCritical); ok {
		alerts = append(alerts, collector.Alert{
			Level:   level,
			Type:    collector.TypeDisk,
			Message: fmt.Sprintf("Disk at %d%%", snapshot.Disk.Percent),
		})
	}

	if load1 := snapshot.Load[0]; load1 > e.thresholds.LoadWarning {
		alerts = append(alerts, collector.Alert{
			Level:   collector.LevelWarning,
			Type:    collector.TypeLoad,
			Message: "Load average: " + formatNumber(load1),
		})
	}

	return alerts
}

// Apply 评估告警并写入快照的alerts和status字段
func (e *Evaluator) Apply(snapshot *collector.SystemSnapshot) *collector.SystemSnapshot {
	if snapshot == nil {
		return nil
	}
	snapshot.Alerts = e.Evaluate(snapshot)
	snapshot.Status = StatusOf(snapshot.Alerts)
	return snapshot
}

// StatusOf 有任何告警时为warning，否则为healthy
func StatusOf(alerts []collector.Alert) collector.Status {
	if len(alerts) > 0 {
		return collector.StatusWarning
	}
	return collector.StatusHealthy
}

// tier 严重级别优先于警告级别
func tier(value, warning, critical float64) (collector.AlertLevel, bool) {
	switch {
	case value >= critical:
		return collector.LevelCritical, true
	case value >= warning:
		return collector.LevelWarning, true
	default:
		return "", false
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
