package collector

import (
	"regexp"
	"strings"
)

var (
	uptimePattern = regexp.MustCompile(`up\s+(.+?),\s+\d+\s+user`)
	loadPattern   = regexp.MustCompile(`load averages?:\s+([\d.]+)[,\s]+([\d.]+)[,\s]+([\d.]+)`)
)

// parseUptime 从uptime输出中提取运行时长和1/5/15分钟负载
// 任一部分无法解析时使用默认值
func parseUptime(output string) UptimeStats {
	stats := UptimeStats{
		Uptime: defaultUptime(),
		Load:   defaultLoad(),
	}

	if m := uptimePattern.FindStringSubmatch(output); len(m) == 2 {
		if uptime := strings.TrimSpace(m[1]); uptime != "" {
			stats.Uptime = uptime
		}
	}

	if m := loadPattern.FindStringSubmatch(output); len(m) == 4 {
		stats.Load = [3]float64{parseFloat(m[1]), parseFloat(m[2]), parseFloat(m[3])}
	}

	return stats
}
