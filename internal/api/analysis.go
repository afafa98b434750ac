package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescope/internal/engine"
)

// GetTop20 当前数据源的前20大客户分析
// GET /api/top20
func (h *Handler) GetTop20(c *gin.Context) {
	ds, ok := h.store.Current()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请先在首页导入数据源"})
		return
	}

	result := engine.RankTopCustomers(ds.Aggregates, len(ds.Rows))
	c.JSON(http.StatusOK, result)
}

// GetTrend 按维度与目标做月度趋势分析
// GET /api/trend?dimension=customer&target=C001
func (h *Handler) GetTrend(c *gin.Context) {
	ds, ok := h.store.Current()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请先在首页导入数据源"})
		return
	}

	dimension := c.DefaultQuery("dimension", engine.DimCustomer)
	target := c.Query("target")

	result, err := engine.AnalyzeMonthly(ds.Rows, dimension, target)
	if err != nil {
		c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTrendDetails 返回命中筛选条件的订单明细（供导出）
// GET /api/trend/details?dimension=province&target=湖南省
func (h *Handler) GetTrendDetails(c *gin.Context) {
	ds, ok := h.store.Current()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请先在首页导入数据源"})
		return
	}

	dimension := c.DefaultQuery("dimension", engine.DimCustomer)
	target := c.Query("target")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": engine.ErrNoTarget.Error()})
		return
	}

	details := engine.FilterRows(ds.Rows, dimension, target)
	c.JSON(http.StatusOK, gin.H{
		"rows":  details,
		"total": len(details),
	})
}

// MergeRequest 合并分析请求
type MergeRequest struct {
	SourceIDs []string `json:"source_ids"`
	Dimension string   `json:"dimension"` // 可选，指定时在合并数据上做月度趋势
	Target    string   `json:"target"`
}

// MergeAnalyze 合并多个数据源并分析
// POST /api/merge
func (h *Handler) MergeAnalyze(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	merged, err := engine.MergeSources(h.store, req.SourceIDs)
	if err != nil {
		c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"file_path":  merged.FilePath,
		"total_rows": len(merged.Rows),
		"top20":      engine.RankTopCustomers(merged.Aggregates, len(merged.Rows)),
	}

	if req.Dimension != "" && req.Target != "" {
		trend, err := engine.AnalyzeMonthly(merged.Rows, req.Dimension, req.Target)
		if err != nil {
			c.JSON(statusCodeFor(err), gin.H{"error": err.Error()})
			return
		}
		resp["trend"] = trend
	}

	c.JSON(http.StatusOK, resp)
}
