package collector

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultCommandTimeout 单个外部命令的默认超时时间
const DefaultCommandTimeout = 5 * time.Second

// pipeWaitDelay 命令退出或被终止后，等待输出管道关闭的最长时间
const pipeWaitDelay = 100 * time.Millisecond

// Runner 外部命令和伪文件的读取接口，测试中可替换为固定文本
type Runner interface {
	// Run 执行命令并返回标准输出；命令不存在、超时或没有输出时ok为false
	Run(ctx context.Context, name string, args ...string) (stdout string, ok bool)
	// ReadFile 读取文件内容；读取失败或内容为空时ok为false
	ReadFile(path string) (content string, ok bool)
}

// ExecRunner 基于os/exec的Runner实现
type ExecRunner struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewExecRunner 创建命令执行器
func NewExecRunner(options ...func(*ExecRunner)) *ExecRunner {
	r := &ExecRunner{
		timeout: DefaultCommandTimeout,
		logger:  zap.NewNop(),
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// WithCommandTimeout 设置单个命令的超时时间
func WithCommandTimeout(timeout time.Duration) func(*ExecRunner) {
	return func(r *ExecRunner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithRunnerLogger 设置日志记录器
func WithRunnerLogger(logger *zap.Logger) func(*ExecRunner) {
	return func(r *ExecRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Run 执行外部命令
// 与shell的命令替换一致：只要标准输出非空就视为可用，退出码仅用于日志
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	// 后台子进程继承stdout时不再等待其退出
	cmd.WaitDelay = min(pipeWaitDelay, r.timeout)
	out, err := cmd.Output()

	if ctx.Err() != nil {
		r.logger.Debug("命令执行超时",
			zap.String("command", name),
			zap.Strings("args", args),
			zap.Duration("timeout", r.timeout))
		return "", false
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(err, exec.ErrWaitDelay):
			// 命令本身已正常退出，已读到的输出可用
			r.logger.Debug("命令的子进程仍占用输出管道",
				zap.String("command", name),
				zap.Strings("args", args))
		case !errors.As(err, &exitErr):
			r.logger.Debug("命令不可用",
				zap.String("command", name),
				zap.Error(err))
			return "", false
		default:
			r.logger.Debug("命令返回非零退出码",
				zap.String("command", name),
				zap.Strings("args", args),
				zap.Int("exit_code", exitErr.ExitCode()))
		}
	}

	if strings.TrimSpace(string(out)) == "" {
		return "", false
	}

	return string(out), true
}

// ReadFile 读取伪文件
func (r *ExecRunner) ReadFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Debug("读取文件失败", zap.String("path", path), zap.Error(err))
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}
