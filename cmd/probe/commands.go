package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/syslens/syslens-probe/internal/agent/reporter"
	"github.com/syslens/syslens-probe/internal/render"
	"github.com/syslens/syslens-probe/internal/server"
	"github.com/syslens/syslens-probe/internal/server/api"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// statusAction 采集并输出状态面板或JSON
func (p *probeApp) statusAction(c *cli.Context) error {
	s, err := p.newSession(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer s.logger.Sync() //nolint:errcheck

	limit := s.cfg.Collection.ProcessLimit
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}

	snapshot := s.evaluator.Apply(s.collector.Collect(c.Context, limit))

	renderer := render.NewRenderer(p.stdout)
	if c.Bool("json") {
		return renderer.JSON(snapshot)
	}
	return renderer.Status(snapshot)
}

// heartbeatAction 采集快照并上报，未配置地址时输出到终端
func (p *probeApp) heartbeatAction(c *cli.Context) error {
	s, err := p.newSession(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer s.logger.Sync() //nolint:errcheck

	silent := c.Bool("silent")
	snapshot := s.evaluator.Apply(s.collector.Collect(c.Context, s.cfg.Heartbeat.ProcessLimit))
	r := buildReporter(s.cfg, c.String("endpoint"), c.String("token"), s.logger)

	err = r.Report(c.Context, snapshot)
	switch {
	case errors.Is(err, reporter.ErrNoEndpoint):
		if !silent {
			fmt.Fprintln(p.stderr, "No endpoint configured. Use --endpoint or set MONITOR_HEARTBEAT_ENDPOINT")
			return render.NewRenderer(p.stdout, render.WithColor(false)).JSON(snapshot)
		}
		return nil
	case err != nil:
		s.logger.Error("心跳上报失败", zap.String("endpoint", r.Endpoint()), zap.Error(err))
		return cli.Exit(fmt.Sprintf("Heartbeat failed: %v", err), 1)
	}

	if !silent {
		fmt.Fprintf(p.stdout, "Heartbeat sent to %s\n", r.Endpoint())
	}
	return nil
}

// serveAction 启动HTTP接口，收到SIGINT或SIGTERM后优雅退出
func (p *probeApp) serveAction(c *cli.Context) error {
	s, err := p.newSession(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer s.logger.Sync() //nolint:errcheck

	addr := s.cfg.Server.HTTPAddr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	handler := api.NewStatusHandler(s.collector, s.evaluator,
		api.WithProcessLimit(s.cfg.Collection.ProcessLimit),
		api.WithLogger(s.logger))

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(p.stdout, "Serving status on http://%s\n", addr)
	if err := server.NewStatusServer(addr, handler, s.logger).Run(ctx); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
