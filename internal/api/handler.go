package api

import (
	"github.com/gin-gonic/gin"

	"salescope/internal/config"
	"salescope/internal/engine"
	"salescope/internal/store"
)

// Handler API 处理器
type Handler struct {
	store   *store.Store
	aggOpts engine.AggregateOptions
	cancel  *engine.CancelToken
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{
		store: st,
		aggOpts: engine.AggregateOptions{
			Workers:      cfg.Engine.Workers,
			MinChunkSize: cfg.Engine.MinChunkSize,
		},
		cancel: engine.NewCancelToken(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据源管理
	router.POST("/sources", h.AddSource)
	router.GET("/sources", h.ListSources)
	router.POST("/sources/:id/select", h.SelectSource)
	router.DELETE("/sources/:id", h.DeleteSource)
	router.DELETE("/sources", h.ClearSources)
	router.GET("/options", h.GetOptions)

	// 分析
	router.GET("/top20", h.GetTop20)
	router.GET("/trend", h.GetTrend)
	router.GET("/trend/details", h.GetTrendDetails)
	router.POST("/merge", h.MergeAnalyze)

	// 政策匹配
	router.POST("/policy/match", h.MatchPolicy)

	// 取消当前任务
	router.POST("/cancel", h.CancelAnalysis)
}
