package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
)

// KernelStats 直接向内核查询运行时长和平均负载，uptime命令不可用时使用
type KernelStats interface {
	// UptimeSeconds 返回系统已运行的秒数
	UptimeSeconds(ctx context.Context) (uint64, error)
	// LoadAverage 返回1/5/15分钟平均负载
	LoadAverage(ctx context.Context) ([3]float64, error)
}

// hostKernelStats 基于gopsutil的实现，Linux读取/proc，Darwin使用sysctl
type hostKernelStats struct{}

func (hostKernelStats) UptimeSeconds(ctx context.Context) (uint64, error) {
	return host.UptimeWithContext(ctx)
}

func (hostKernelStats) LoadAverage(ctx context.Context) ([3]float64, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return [3]float64{}, err
	}
	return [3]float64{round2(avg.Load1), round2(avg.Load5), round2(avg.Load15)}, nil
}

// uptimeFromKernel 通过KernelStats得到与uptime命令格式一致的结果
// 任一部分查询失败时该部分使用默认值
func uptimeFromKernel(ctx context.Context, stats KernelStats) (UptimeStats, bool) {
	result := UptimeStats{
		Uptime: defaultUptime(),
		Load:   defaultLoad(),
	}
	found := false

	if seconds, err := stats.UptimeSeconds(ctx); err == nil && seconds > 0 {
		result.Uptime = formatUptime(seconds)
		found = true
	}
	if avg, err := stats.LoadAverage(ctx); err == nil {
		result.Load = avg
		found = true
	}

	return result, found
}

// formatUptime 按procps uptime的写法格式化，如 "12 days,  3:47"、"1 day, 25 min"、"3:05"
func formatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	var parts []string
	if days == 1 {
		parts = append(parts, "1 day")
	} else if days > 1 {
		parts = append(parts, fmt.Sprintf("%d days", days))
	}

	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%2d:%02d", hours, minutes))
	} else {
		parts = append(parts, fmt.Sprintf("%d min", minutes))
	}

	return strings.TrimSpace(strings.Join(parts, ", "))
}
