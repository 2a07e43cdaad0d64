package collector

import (
	"math"
	"path"
	"strconv"
	"strings"
)

const (
	// maxCommandLength 进程命令名的最大显示长度
	maxCommandLength = 20
	ellipsis         = "..."

	kibPerGiB   = 1024 * 1024
	bytesPerGiB = 1024 * 1024 * 1024
)

// round1 四舍五入保留一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 保留两位小数，与uptime命令输出的负载精度一致
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percentOf 计算used占total的百分比，total为0时返回0
func percentOf(used, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round1(used / total * 100)
}

// kbToGiB 将KiB转换为GiB
func kbToGiB(kb int64) float64 {
	return round1(float64(kb) / kibPerGiB)
}

// bytesToGiB 将字节转换为GiB
func bytesToGiB(b int64) float64 {
	return round1(float64(b) / bytesPerGiB)
}

// memoryFromTotals 根据总量和可用量计算内存统计
func memoryFromTotals(total, available int64, toGiB func(int64) float64) MemoryStats {
	used := total - available
	return MemoryStats{
		TotalGB:     toGiB(total),
		UsedGB:      toGiB(used),
		AvailableGB: toGiB(available),
		Percent:     percentOf(float64(used), float64(total)),
	}
}

// shortenCommand 只保留可执行文件名，超过20个字符时截断并追加省略号
func shortenCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}

	name := path.Base(fields[0])
	runes := []rune(name)
	if len(runes) > maxCommandLength {
		return string(runes[:maxCommandLength]) + ellipsis
	}
	return name
}

// FormatBytes 将字节数格式化为B/KB/MB/GB，保留一位小数
func FormatBytes(b int64) string {
	units := []string{"B", "KB", "MB", "GB"}
	if b <= 0 {
		return "0 B"
	}

	value := float64(b)
	power := 0
	for value >= 1024 && power < len(units)-1 {
		value /= 1024
		power++
	}

	return strconv.FormatFloat(round1(value), 'f', -1, 64) + " " + units[power]
}

// parseInt64 解析整数，失败时返回0
func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseFloat 解析浮点数，失败时返回0
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
