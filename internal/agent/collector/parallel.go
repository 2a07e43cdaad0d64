package collector

import (
	"context"
	"sync"
)

// ParallelCollector 并行执行各子探针的收集器
// 子探针之间没有共享状态，输出与SystemCollector一致
type ParallelCollector struct {
	// 继承SystemCollector的所有字段
	SystemCollector
}

// NewParallelCollector 创建一个新的并行收集器
func NewParallelCollector(options ...func(*SystemCollector)) *ParallelCollector {
	baseCollector := NewSystemCollector(options...)
	return &ParallelCollector{
		SystemCollector: *baseCollector,
	}
}

// Collect 并行采集完整快照
func (pc *ParallelCollector) Collect(ctx context.Context, processLimit int) *SystemSnapshot {
	var (
		wg        sync.WaitGroup
		memory    MemoryStats
		uptime    UptimeStats
		disk      DiskStats
		processes []ProcessInfo
		hostname  string
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		memory = pc.CollectMemory(ctx)
	}()
	go func() {
		defer wg.Done()
		uptime = pc.CollectUptime(ctx)
	}()
	go func() {
		defer wg.Done()
		disk = pc.CollectDisk(ctx)
	}()
	go func() {
		defer wg.Done()
		processes = pc.CollectProcesses(ctx, processLimit)
	}()
	go func() {
		defer wg.Done()
		hostname = pc.CollectHostname(ctx)
	}()

	// 等待所有子探针完成
	wg.Wait()

	return pc.assemble(hostname, memory, uptime, disk, processes)
}
