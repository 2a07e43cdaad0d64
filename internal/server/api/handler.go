package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/syslens/syslens-probe/internal/agent/collector"
	"github.com/syslens/syslens-probe/internal/alert"
	"go.uber.org/zap"
)

// maxProcessLimit 单次请求允许的最大进程数
const maxProcessLimit = 100

// StatusHandler 处理本机状态相关的API请求
type StatusHandler struct {
	collector    collector.Collector // 指标采集器
	evaluator    *alert.Evaluator    // 告警评估器
	processLimit int                 // 默认进程数
	logger       *zap.Logger         // 日志记录器
}

// NewStatusHandler 创建新的状态处理器
func NewStatusHandler(c collector.Collector, evaluator *alert.Evaluator, options ...func(*StatusHandler)) *StatusHandler {
	h := &StatusHandler{
		collector:    c,
		evaluator:    evaluator,
		processLimit: 10,
		logger:       zap.NewNop(), // 默认使用空日志记录器
	}

	for _, option := range options {
		option(h)
	}

	return h
}

// WithProcessLimit 设置默认进程数
func WithProcessLimit(limit int) func(*StatusHandler) {
	return func(h *StatusHandler) {
		if limit >= 0 {
			h.processLimit = limit
		}
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *zap.Logger) func(*StatusHandler) {
	return func(h *StatusHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// HandleGetStatusGin 采集一次快照并附带告警返回
func (h *StatusHandler) HandleGetStatusGin(c *gin.Context) {
	limit, ok := h.parseLimit(c)
	if !ok {
		return
	}

	snapshot := h.evaluator.Apply(h.collector.Collect(c.Request.Context(), limit))

	h.logger.Debug("状态快照已生成",
		zap.String("hostname", snapshot.Hostname),
		zap.String("status", string(snapshot.Status)),
		zap.Int("alerts", len(snapshot.Alerts)))

	RespondWithSuccess(c, http.StatusOK, snapshot)
}

// HandleGetAlertsGin 只返回告警和整体状态
func (h *StatusHandler) HandleGetAlertsGin(c *gin.Context) {
	snapshot := h.evaluator.Apply(h.collector.Collect(c.Request.Context(), 0))

	RespondWithSuccess(c, http.StatusOK, gin.H{
		"hostname":  snapshot.Hostname,
		"timestamp": snapshot.Timestamp,
		"status":    snapshot.Status,
		"alerts":    snapshot.Alerts,
	})
}

// HandleGetThresholdsGin 返回当前生效的告警阈值
func (h *StatusHandler) HandleGetThresholdsGin(c *gin.Context) {
	RespondWithSuccess(c, http.StatusOK, h.evaluator.Thresholds())
}

// parseLimit 解析limit查询参数，缺省时使用默认值
func (h *StatusHandler) parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return h.processLimit, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 || limit > maxProcessLimit {
		RespondWithValidationError(c, "limit必须是0到100之间的整数", gin.H{"limit": raw})
		return 0, false
	}
	return limit, true
}
