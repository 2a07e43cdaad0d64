package collector

import (
	"strconv"
	"strings"
)

// parseDiskUsage 解析df -h /的输出，第一行为表头
// 设备名过长时df会把数据折到下一行，这里合并后再按列解析
func parseDiskUsage(output string) DiskStats {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) < 2 {
		return defaultDisk()
	}

	fields := strings.Fields(lines[1])
	if len(fields) == 1 && len(lines) > 2 {
		fields = append(fields, strings.Fields(lines[2])...)
	}

	stats := defaultDisk()
	if len(fields) > 1 {
		stats.Total = fields[1]
	}
	if len(fields) > 2 {
		stats.Used = fields[2]
	}
	if len(fields) > 3 {
		stats.Available = fields[3]
	}
	if len(fields) > 4 {
		stats.Percent = parsePercent(fields[4])
	}

	return stats
}

// parsePercent 解析"85%"形式的百分比并限制在0-100之间
func parsePercent(s string) int {
	v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
