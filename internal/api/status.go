package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"source_count": h.store.Count(),
		"current_id":   h.store.CurrentID(),
	})
}

// CancelAnalysis 请求取消进行中的导入/分析任务。
// 取消是协作式的，进行中的分块会先跑完再退出。
// POST /api/cancel
func (h *Handler) CancelAnalysis(c *gin.Context) {
	h.cancel.Cancel()
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}
