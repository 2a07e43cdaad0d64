package collector

import (
	"context"
	"regexp"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// Platform 操作系统族
type Platform string

const (
	PlatformLinux  Platform = "linux"
	PlatformDarwin Platform = "darwin"
)

// DetectPlatform 根据运行时判断操作系统族，非Darwin系统一律按Linux处理
func DetectPlatform() Platform {
	return ParsePlatform(runtime.GOOS)
}

// ParsePlatform 解析平台名称，空值或未知值按Linux处理
func ParsePlatform(name string) Platform {
	if strings.EqualFold(strings.TrimSpace(name), string(PlatformDarwin)) {
		return PlatformDarwin
	}
	return PlatformLinux
}

// MemoryProbe 平台相关的内存探针
type MemoryProbe interface {
	Probe(ctx context.Context) MemoryStats
}

// NewMemoryProbe 按平台选择内存探针
func NewMemoryProbe(platform Platform, runner Runner, logger *zap.Logger) MemoryProbe {
	if logger == nil {
		logger = zap.NewNop()
	}
	if platform == PlatformDarwin {
		return &DarwinMemoryProbe{runner: runner, logger: logger}
	}
	return &LinuxMemoryProbe{runner: runner, logger: logger, path: "/proc/meminfo"}
}

var (
	memTotalPattern      = regexp.MustCompile(`MemTotal:\s+(\d+)`)
	memAvailablePattern  = regexp.MustCompile(`MemAvailable:\s+(\d+)`)
	pagesFreePattern     = regexp.MustCompile(`Pages free:\s+(\d+)`)
	pagesInactivePattern = regexp.MustCompile(`Pages inactive:\s+(\d+)`)
)

// LinuxMemoryProbe 读取/proc/meminfo
type LinuxMemoryProbe struct {
	runner Runner
	logger *zap.Logger
	path   string
}

// Probe 采集内存信息，used = MemTotal - MemAvailable
func (p *LinuxMemoryProbe) Probe(ctx context.Context) MemoryStats {
	content, ok := p.runner.ReadFile(p.path)
	if !ok {
		p.logger.Debug("内存信息不可用，使用默认值", zap.String("path", p.path))
		return defaultMemory()
	}
	return parseMeminfo(content)
}

// parseMeminfo 解析meminfo文本，缺失字段按0处理
func parseMeminfo(content string) MemoryStats {
	totalKB := matchInt(memTotalPattern, content)
	availableKB := matchInt(memAvailablePattern, content)
	return memoryFromTotals(totalKB, availableKB, kbToGiB)
}

// DarwinMemoryProbe 通过sysctl和vm_stat估算内存
// 可用内存按 free + inactive 页估算，不区分压缩、清除等其他类别
type DarwinMemoryProbe struct {
	runner Runner
	logger *zap.Logger
}

// Probe 采集内存信息
func (p *DarwinMemoryProbe) Probe(ctx context.Context) MemoryStats {
	pageSize := p.sysctlInt(ctx, "hw.pagesize")
	totalBytes := p.sysctlInt(ctx, "hw.memsize")

	vmStat, ok := p.runner.Run(ctx, "vm_stat")
	if !ok {
		p.logger.Debug("vm_stat不可用，可用页按0处理")
	}

	return darwinMemory(pageSize, totalBytes, vmStat)
}

func (p *DarwinMemoryProbe) sysctlInt(ctx context.Context, name string) int64 {
	out, ok := p.runner.Run(ctx, "sysctl", "-n", name)
	if !ok {
		p.logger.Debug("sysctl不可用", zap.String("name", name))
		return 0
	}
	return parseInt64(out)
}

// darwinMemory 根据页大小、物理内存总量和vm_stat输出计算内存统计
func darwinMemory(pageSize, totalBytes int64, vmStat string) MemoryStats {
	freePages := matchInt(pagesFreePattern, vmStat)
	inactivePages := matchInt(pagesInactivePattern, vmStat)
	availableBytes := (freePages + inactivePages) * pageSize
	return memoryFromTotals(totalBytes, availableBytes, bytesToGiB)
}

// matchInt 返回正则第一个分组对应的整数，未匹配时返回0
func matchInt(pattern *regexp.Regexp, content string) int64 {
	m := pattern.FindStringSubmatch(content)
	if len(m) < 2 {
		return 0
	}
	return parseInt64(m[1])
}
