package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExecRunner(t *testing.T) {
	ctx := context.Background()
	r := NewExecRunner(WithCommandTimeout(200 * time.Millisecond))

	t.Run("命令不存在", func(t *testing.T) {
		if out, ok := r.Run(ctx, "syslens-probe-no-such-command"); ok || out != "" {
			t.Errorf("期望不可用, 实际 ok=%v out=%q", ok, out)
		}
	})

	t.Run("正常输出", func(t *testing.T) {
		out, ok := r.Run(ctx, "echo", "hello")
		if !ok || out != "hello\n" {
			t.Errorf("ok=%v out=%q", ok, out)
		}
	})

	t.Run("空输出视为不可用", func(t *testing.T) {
		if _, ok := r.Run(ctx, "true"); ok {
			t.Error("空输出应返回ok=false")
		}
	})

	t.Run("后台子进程占用输出管道", func(t *testing.T) {
		r := NewExecRunner(WithCommandTimeout(time.Second))
		start := time.Now()
		out, ok := r.Run(ctx, "sh", "-c", "echo hi; sleep 3 &")
		if elapsed := time.Since(start); elapsed > 1500*time.Millisecond {
			t.Errorf("应在超时时间内返回, 耗时 %v", elapsed)
		}
		if !ok || out != "hi\n" {
			t.Errorf("已退出命令的输出应保留, ok=%v out=%q", ok, out)
		}
	})

	t.Run("超时", func(t *testing.T) {
		start := time.Now()
		if _, ok := r.Run(ctx, "sleep", "5"); ok {
			t.Error("超时命令应返回ok=false")
		}
		if elapsed := time.Since(start); elapsed > 3*time.Second {
			t.Errorf("超时未生效, 耗时 %v", elapsed)
		}
	})

	t.Run("超时后子进程仍占用输出管道", func(t *testing.T) {
		start := time.Now()
		if _, ok := r.Run(ctx, "sh", "-c", "sleep 3 & sleep 3"); ok {
			t.Error("超时命令应返回ok=false")
		}
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Errorf("超时未生效, 耗时 %v", elapsed)
		}
	})
}

func TestExecRunnerReadFile(t *testing.T) {
	r := NewExecRunner()
	dir := t.TempDir()

	path := filepath.Join(dir, "meminfo")
	if err := os.WriteFile(path, []byte(linuxMeminfo), 0o644); err != nil {
		t.Fatal(err)
	}
	if content, ok := r.ReadFile(path); !ok || content != linuxMeminfo {
		t.Errorf("读取失败: ok=%v", ok)
	}

	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.ReadFile(empty); ok {
		t.Error("空文件应返回ok=false")
	}

	if _, ok := r.ReadFile(filepath.Join(dir, "missing")); ok {
		t.Error("不存在的文件应返回ok=false")
	}
}
