package collector

import (
	"context"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Collector 主机快照收集器接口
// 采集过程不会失败，任何子探针不可用时对应字段降级为默认值
type Collector interface {
	Collect(ctx context.Context, processLimit int) *SystemSnapshot
}

// SystemCollector 按顺序执行各子探针的收集器
type SystemCollector struct {
	runner         Runner
	platform       Platform
	memoryProbe    MemoryProbe
	kernelStats    KernelStats
	logger         *zap.Logger
	lookupHostname func(ctx context.Context) (string, error)
	now            func() time.Time
}

// NewSystemCollector 创建新的系统快照收集器
func NewSystemCollector(options ...func(*SystemCollector)) *SystemCollector {
	sc := &SystemCollector{
		platform:       DetectPlatform(),
		kernelStats:    hostKernelStats{},
		logger:         zap.NewNop(),
		lookupHostname: lookupHostname,
		now:            time.Now,
	}

	// 应用可选配置
	for _, option := range options {
		option(sc)
	}

	if sc.runner == nil {
		sc.runner = NewExecRunner(WithRunnerLogger(sc.logger))
	}
	if sc.memoryProbe == nil {
		sc.memoryProbe = NewMemoryProbe(sc.platform, sc.runner, sc.logger)
	}

	return sc
}

// WithRunner 设置命令执行器
func WithRunner(runner Runner) func(*SystemCollector) {
	return func(sc *SystemCollector) {
		sc.runner = runner
	}
}

// WithPlatform 指定操作系统族，决定内存探针的实现
func WithPlatform(platform Platform) func(*SystemCollector) {
	return func(sc *SystemCollector) {
		sc.platform = platform
	}
}

// WithMemoryProbe 直接注入内存探针
func WithMemoryProbe(probe MemoryProbe) func(*SystemCollector) {
	return func(sc *SystemCollector) {
		sc.memoryProbe = probe
	}
}

// WithKernelStats 设置uptime命令不可用时使用的内核查询
func WithKernelStats(stats KernelStats) func(*SystemCollector) {
	return func(sc *SystemCollector) {
		if stats != nil {
			sc.kernelStats = stats
		}
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *zap.Logger) func(*SystemCollector) {
	return func(sc *SystemCollector) {
		if logger != nil {
			sc.logger = logger
		}
	}
}

// WithHostnameLookup 设置hostname命令无输出时的回退查询
func WithHostnameLookup(lookup func(ctx context.Context) (string, error)) func(*SystemCollector) {
	return func(sc *SystemCollector) {
		if lookup != nil {
			sc.lookupHostname = lookup
		}
	}
}

// WithClock 设置时间源
func WithClock(now func() time.Time) func(*SystemCollector) {
	return func(sc *SystemCollector) {
		if now != nil {
			sc.now = now
		}
	}
}

// Collect 采集完整快照
func (sc *SystemCollector) Collect(ctx context.Context, processLimit int) *SystemSnapshot {
	memory := sc.CollectMemory(ctx)
	uptime := sc.CollectUptime(ctx)
	disk := sc.CollectDisk(ctx)
	processes := sc.CollectProcesses(ctx, processLimit)
	hostname := sc.CollectHostname(ctx)

	return sc.assemble(hostname, memory, uptime, disk, processes)
}

// assemble 组装快照并生成时间戳
func (sc *SystemCollector) assemble(hostname string, memory MemoryStats, uptime UptimeStats, disk DiskStats, processes []ProcessInfo) *SystemSnapshot {
	return &SystemSnapshot{
		Hostname:  hostname,
		Timestamp: sc.now().Format(time.RFC3339),
		Memory:    memory,
		Load:      uptime.Load,
		Uptime:    uptime.Uptime,
		Disk:      disk,
		Processes: processes,
		Alerts:    []Alert{},
	}
}

// CollectMemory 采集内存信息
func (sc *SystemCollector) CollectMemory(ctx context.Context) MemoryStats {
	return sc.memoryProbe.Probe(ctx)
}

// CollectProcesses 采集内存占用最高的limit个进程
func (sc *SystemCollector) CollectProcesses(ctx context.Context, limit int) []ProcessInfo {
	if limit <= 0 {
		return defaultProcesses()
	}

	out, ok := sc.listProcesses(ctx)
	if !ok {
		sc.degraded(KindProcesses)
		return defaultProcesses()
	}
	return parseProcesses(out, limit)
}

// CollectUptime 采集运行时长和平均负载
// uptime命令不可用时改为直接查询内核
func (sc *SystemCollector) CollectUptime(ctx context.Context) UptimeStats {
	if out, ok := sc.runner.Run(ctx, "uptime"); ok {
		return parseUptime(out)
	}

	stats, ok := uptimeFromKernel(ctx, sc.kernelStats)
	if !ok {
		sc.degraded(KindUptime)
	}
	return stats
}

// CollectDisk 采集根文件系统使用情况
func (sc *SystemCollector) CollectDisk(ctx context.Context) DiskStats {
	out, ok := sc.runner.Run(ctx, "df", "-h", "/")
	if !ok {
		sc.degraded(KindDisk)
		return defaultDisk()
	}
	return parseDiskUsage(out)
}

// CollectHostname 获取主机名，hostname命令无输出时回退到系统查询
func (sc *SystemCollector) CollectHostname(ctx context.Context) string {
	if out, ok := sc.runner.Run(ctx, "hostname"); ok {
		if name := strings.TrimSpace(out); name != "" {
			return name
		}
	}

	name, err := sc.lookupHostname(ctx)
	if err != nil || strings.TrimSpace(name) == "" {
		sc.degraded(KindHostname)
		return defaultHostname()
	}
	return strings.TrimSpace(name)
}

func (sc *SystemCollector) degraded(kind MetricKind) {
	sc.logger.Debug("子探针不可用，使用默认值", zap.Stringer("metric", kind))
}

// lookupHostname hostname命令不可用时向系统查询
func lookupHostname(context.Context) (string, error) {
	return os.Hostname()
}
