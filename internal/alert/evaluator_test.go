package alert

import (
	"reflect"
	"testing"

	"github.com/syslens/syslens-probe/internal/agent/collector"
)

func snapshotWith(memory float64, disk int, load1 float64) *collector.SystemSnapshot {
	return &collector.SystemSnapshot{
		Memory: collector.MemoryStats{Percent: memory},
		Disk:   collector.DiskStats{Percent: disk},
		Load:   [3]float64{load1, 0, 0},
	}
}

func TestEvaluateOrderAndLevels(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())
	snapshot := e.Apply(snapshotWith(92, 85, 12))

	want := []collector.Alert{
		{Level: collector.LevelCritical, Type: collector.TypeMemory, Message: "Memory at 92%"},
		{Level: collector.LevelWarning, Type: collector.TypeDisk, Message: "Disk at 85%"},
		{Level: collector.LevelWarning, Type: collector.TypeLoad, Message: "Load average: 12"},
	}
	if !reflect.DeepEqual(snapshot.Alerts, want) {
		t.Errorf("告警 = %+v, 期望 %+v", snapshot.Alerts, want)
	}
	if snapshot.Status != collector.StatusWarning {
		t.Errorf("状态 = %q, 期望 warning", snapshot.Status)
	}
}

func TestEvaluateHealthy(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())
	snapshot := e.Apply(snapshotWith(50, 50, 1))

	if snapshot.Alerts == nil || len(snapshot.Alerts) != 0 {
		t.Errorf("告警应为空切片: %#v", snapshot.Alerts)
	}
	if snapshot.Status != collector.StatusHealthy {
		t.Errorf("状态 = %q, 期望 healthy", snapshot.Status)
	}
}

func TestEvaluateBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		snap   *collector.SystemSnapshot
		levels []collector.AlertLevel
		types  []collector.AlertType
	}{
		{"内存恰好80", snapshotWith(80, 0, 0), []collector.AlertLevel{collector.LevelWarning}, []collector.AlertType{collector.TypeMemory}},
		{"内存79.9", snapshotWith(79.9, 0, 0), nil, nil},
		{"内存恰好90", snapshotWith(90, 0, 0), []collector.AlertLevel{collector.LevelCritical}, []collector.AlertType{collector.TypeMemory}},
		{"磁盘恰好90", snapshotWith(0, 90, 0), []collector.AlertLevel{collector.LevelCritical}, []collector.AlertType{collector.TypeDisk}},
		{"磁盘100", snapshotWith(0, 100, 0), []collector.AlertLevel{collector.LevelCritical}, []collector.AlertType{collector.TypeDisk}},
		{"负载恰好10不告警", snapshotWith(0, 0, 10), nil, nil},
		{"负载50只有警告", snapshotWith(0, 0, 50), []collector.AlertLevel{collector.LevelWarning}, []collector.AlertType{collector.TypeLoad}},
	}

	e := NewEvaluator(DefaultThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := e.Evaluate(tt.snap)
			if len(alerts) != len(tt.levels) {
				t.Fatalf("告警数 = %d, 期望 %d: %+v", len(alerts), len(tt.levels), alerts)
			}
			for i, a := range alerts {
				if a.Level != tt.levels[i] || a.Type != tt.types[i] {
					t.Errorf("第%d条告警 = %+v", i, a)
				}
			}
		})
	}
}

func TestEvaluateMessages(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())
	alerts := e.Evaluate(snapshotWith(85.5, 0, 10.25))

	if len(alerts) != 2 {
		t.Fatalf("告警数 = %d", len(alerts))
	}
	if alerts[0].Message != "Memory at 85.5%" {
		t.Errorf("消息 = %q", alerts[0].Message)
	}
	if alerts[1].Message != "Load average: 10.25" {
		t.Errorf("消息 = %q", alerts[1].Message)
	}
}

func TestCustomThresholds(t *testing.T) {
	e := NewEvaluator(Thresholds{
		MemoryWarning:  50,
		MemoryCritical: 60,
		DiskWarning:    95,
		DiskCritical:   99,
		LoadWarning:    2,
	})
	alerts := e.Evaluate(snapshotWith(55, 90, 3))

	want := []collector.Alert{
		{Level: collector.LevelWarning, Type: collector.TypeMemory, Message: "Memory at 55%"},
		{Level: collector.LevelWarning, Type: collector.TypeLoad, Message: "Load average: 3"},
	}
	if !reflect.DeepEqual(alerts, want) {
		t.Errorf("告警 = %+v, 期望 %+v", alerts, want)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	e := NewEvaluator(DefaultThresholds())
	snap := snapshotWith(95, 95, 20)

	first := e.Evaluate(snap)
	for i := 0; i < 10; i++ {
		if got := e.Evaluate(snap); !reflect.DeepEqual(got, first) {
			t.Fatalf("第%d次评估结果不同: %+v", i, got)
		}
	}
	if e.Apply(nil) != nil {
		t.Error("nil快照应返回nil")
	}
}
