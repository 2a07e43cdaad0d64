package main

import (
	"io"
	"time"

	"github.com/syslens/syslens-probe/internal/agent/collector"
	"github.com/syslens/syslens-probe/internal/agent/reporter"
	"github.com/syslens/syslens-probe/internal/alert"
	"github.com/syslens/syslens-probe/internal/common/logging"
	"github.com/syslens/syslens-probe/internal/config"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// probeApp 命令行程序的依赖
type probeApp struct {
	stdout io.Writer
	stderr io.Writer

	// 测试时可替换
	newCollector func(cfg *config.ProbeConfig, logger *zap.Logger) collector.Collector
}

func newProbeApp(stdout, stderr io.Writer) *probeApp {
	return &probeApp{
		stdout:       stdout,
		stderr:       stderr,
		newCollector: buildCollector,
	}
}

// cli 构建命令行应用
func (p *probeApp) cli() *cli.App {
	return &cli.App{
		Name:      "syslens-probe",
		Usage:     "本机资源状态探针",
		Version:   version,
		Writer:    p.stdout,
		ErrWriter: p.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径，为空时查找默认位置",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "显示当前系统状态",
				Action: p.statusAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "以JSON格式输出"},
					&cli.IntFlag{Name: "limit", Usage: "显示的进程数量"},
				},
			},
			{
				Name:   "heartbeat",
				Usage:  "向配置的地址发送一次心跳",
				Action: p.heartbeatAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "endpoint", Usage: "心跳上报地址"},
					&cli.StringFlag{Name: "token", Usage: "Bearer认证令牌"},
					&cli.BoolFlag{Name: "silent", Aliases: []string{"quiet", "q"}, Usage: "不输出结果"},
				},
			},
			{
				Name:   "serve",
				Usage:  "启动本机状态HTTP接口",
				Action: p.serveAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "HTTP监听地址"},
				},
			},
		},
	}
}

// session 单次命令执行所需的配置和组件
type session struct {
	cfg       *config.ProbeConfig
	logger    *zap.Logger
	collector collector.Collector
	evaluator *alert.Evaluator
}

// newSession 加载配置并初始化日志、采集器和告警评估器
func (p *probeApp) newSession(c *cli.Context) (*session, error) {
	cfg, err := config.LoadProbeConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if level := c.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:       cfg,
		logger:    logger,
		collector: p.newCollector(cfg, logger),
		evaluator: alert.NewEvaluator(thresholdsFrom(cfg.Thresholds)),
	}, nil
}

// buildCollector 根据采集配置创建收集器
func buildCollector(cfg *config.ProbeConfig, logger *zap.Logger) collector.Collector {
	runner := collector.NewExecRunner(
		collector.WithCommandTimeout(time.Duration(cfg.Collection.CommandTimeout)*time.Second),
		collector.WithRunnerLogger(logger),
	)

	platform := collector.DetectPlatform()
	if cfg.Collection.Platform != "" {
		platform = collector.ParsePlatform(cfg.Collection.Platform)
	}

	options := []func(*collector.SystemCollector){
		collector.WithRunner(runner),
		collector.WithPlatform(platform),
		collector.WithLogger(logger),
	}

	if cfg.Collection.Parallel {
		return collector.NewParallelCollector(options...)
	}
	return collector.NewSystemCollector(options...)
}

// buildReporter 根据心跳配置创建上报器，命令行参数优先于配置
func buildReporter(cfg *config.ProbeConfig, endpoint, token string, logger *zap.Logger) *reporter.HTTPReporter {
	if endpoint == "" {
		endpoint = cfg.Heartbeat.Endpoint
	}
	if token == "" {
		token = cfg.Heartbeat.Token
	}

	return reporter.NewHTTPReporter(endpoint,
		reporter.WithAuthToken(token),
		reporter.WithTimeout(time.Duration(cfg.Heartbeat.Timeout)*time.Second),
		reporter.WithRetryCount(cfg.Heartbeat.RetryCount),
		reporter.WithRetryInterval(time.Duration(cfg.Heartbeat.RetryInterval)*time.Second),
		reporter.WithSecurityConfig(&cfg.Security),
		reporter.WithLogger(logger),
	)
}

func thresholdsFrom(t config.ThresholdConfig) alert.Thresholds {
	return alert.Thresholds{
		MemoryWarning:  t.MemoryWarning,
		MemoryCritical: t.MemoryCritical,
		DiskWarning:    t.DiskWarning,
		DiskCritical:   t.DiskCritical,
		LoadWarning:    t.LoadWarning,
	}
}
