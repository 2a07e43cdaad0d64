// Package server 提供本机状态查询的HTTP服务
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/syslens/syslens-probe/internal/server/api"
	"go.uber.org/zap"
)

// StatusServer 本机状态HTTP服务器
type StatusServer struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewStatusServer 创建状态服务器
func NewStatusServer(addr string, handler *api.StatusHandler, logger *zap.Logger) *StatusServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &StatusServer{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           api.SetupRouter(handler, logger),
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		logger: logger,
	}
}

// Handler 返回路由，便于测试
func (s *StatusServer) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run 监听并提供服务，直到ctx被取消后优雅关闭
func (s *StatusServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve 在给定的listener上提供服务
func (s *StatusServer) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info("启动状态服务器", zap.String("listen_addr", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		err := s.httpServer.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP服务器错误: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("正在关闭状态服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("关闭HTTP服务器失败", zap.Error(err))
		return err
	}

	s.logger.Info("状态服务器已关闭")
	return nil
}
