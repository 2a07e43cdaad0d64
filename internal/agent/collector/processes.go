package collector

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// psFieldCount ps aux输出的列数，COMMAND列保留其余全部内容
const psFieldCount = 11

var whitespacePattern = regexp.MustCompile(`\s+`)

// psInvocations 依次尝试的进程列表命令，第二个用于不支持--sort的BSD ps
var psInvocations = [][]string{
	{"ps", "aux", "--sort=-%mem"},
	{"ps", "aux", "-m"},
}

// listProcesses 按内存降序获取进程列表原始输出
func (sc *SystemCollector) listProcesses(ctx context.Context) (string, bool) {
	for _, argv := range psInvocations {
		if out, ok := sc.runner.Run(ctx, argv[0], argv[1:]...); ok {
			return out, true
		}
	}
	return "", false
}

// parseProcesses 解析ps输出，跳过表头，最多取limit行数据
// 列数不足的行直接丢弃，不影响其他行
func parseProcesses(output string, limit int) []ProcessInfo {
	processes := defaultProcesses()
	if limit <= 0 {
		return processes
	}

	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) <= 1 {
		return processes
	}

	lines = lines[1:]
	if len(lines) > limit {
		lines = lines[:limit]
	}

	for _, line := range lines {
		if proc, ok := parseProcessLine(line); ok {
			processes = append(processes, proc)
		}
	}

	return processes
}

// parseProcessLine 按位置映射 USER PID %CPU %MEM VSZ RSS TTY STAT START TIME COMMAND
func parseProcessLine(line string) (ProcessInfo, bool) {
	parts := whitespacePattern.Split(strings.TrimSpace(line), psFieldCount)
	if len(parts) < psFieldCount {
		return ProcessInfo{}, false
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil || pid <= 0 {
		return ProcessInfo{}, false
	}

	rss := parseInt64(parts[5])
	if rss < 0 {
		rss = 0
	}

	return ProcessInfo{
		User:    parts[0],
		PID:     pid,
		CPU:     parseFloat(parts[2]),
		Mem:     parseFloat(parts[3]),
		RSSKB:   rss,
		Command: shortenCommand(parts[10]),
	}, true
}
