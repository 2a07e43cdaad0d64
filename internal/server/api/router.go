package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syslens/syslens-probe/internal/server/middleware"
)

// SetupRouter 配置API路由
func SetupRouter(handler *StatusHandler, logger *zap.Logger) *gin.Engine {
	// 设置为发布模式，减少不必要的日志
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// 全局中间件
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(logger))

	// 健康检查路由
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API路由组
	api := router.Group("/api/v1")
	{
		api.GET("/status", handler.HandleGetStatusGin)
		api.GET("/alerts", handler.HandleGetAlertsGin)
		api.GET("/thresholds", handler.HandleGetThresholdsGin)
	}

	router.NoRoute(func(c *gin.Context) {
		RespondWithError(c, http.StatusNotFound, nil, "接口不存在: "+c.Request.URL.Path)
	})

	return router
}
