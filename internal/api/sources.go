package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salescope/internal/engine"
	"salescope/internal/store"
	"salescope/internal/xlsx"
)

// sseEvent 流式响应的事件帧
type sseEvent struct {
	Type      string      `json:"type"` // progress/done/error
	Progress  interface{} `json:"progress,omitempty"`
	Result    interface{} `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// AddSource 上传销售明细 Excel 并注册为数据源（SSE 流式进度）
// POST /api/sources
func (h *Handler) AddSource(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	uploadedFile := files[0]

	if h.store.HasPath(uploadedFile.Filename) {
		c.JSON(http.StatusConflict, gin.H{"error": "该文件已经添加为数据源"})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fmt.Sprintf("salescope_import_%d_%s", time.Now().Unix(), uploadedFile.Filename))
	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	h.cancel.Reset()

	progressChan := make(chan engine.ProgressEvent, 100)
	type outcome struct {
		ds  *store.Dataset
		err error
	}
	resultChan := make(chan outcome, 1)

	go func() {
		defer close(progressChan)
		ds, err := h.ingestFile(tempFilePath, uploadedFile.Filename, progressChan)
		resultChan <- outcome{ds: ds, err: err}
	}()

	for ev := range progressChan {
		writeSSE(c, flusher, sseEvent{Type: "progress", Progress: ev, Timestamp: time.Now()})
	}

	out := <-resultChan
	if out.err != nil {
		writeSSE(c, flusher, sseEvent{Type: "error", Error: out.err.Error(), Timestamp: time.Now()})
		return
	}

	h.store.Put(out.ds)
	writeSSE(c, flusher, sseEvent{
		Type: "done",
		Result: gin.H{
			"id":         out.ds.ID,
			"file_name":  out.ds.FileName,
			"total_rows": len(out.ds.Rows),
		},
		Timestamp: time.Now(),
	})
}

// ingestFile 读取网格、规范化并构建聚合缓存
func (h *Handler) ingestFile(tempFilePath, fileName string, progress chan<- engine.ProgressEvent) (*store.Dataset, error) {
	grid, err := xlsx.ReadGrid(tempFilePath)
	if err != nil {
		return nil, err
	}

	result, err := engine.Ingest(grid, fileName, h.cancel, progress)
	if err != nil {
		return nil, err
	}

	aggregates, err := engine.BuildAggregatesWithCancel(result.Rows, h.aggOpts, h.cancel)
	if err != nil {
		return nil, err
	}

	return &store.Dataset{
		ID:         uuid.New().String(),
		FilePath:   fileName,
		FileName:   fileName,
		LoadedAt:   time.Now(),
		Rows:       result.Rows,
		Aggregates: aggregates,
	}, nil
}

func writeSSE(c *gin.Context, flusher http.Flusher, ev sseEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", data)
	flusher.Flush()
}

// ListSources 列出已注册的数据源
// GET /api/sources
func (h *Handler) ListSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data_sources": h.store.List(),
		"current_id":   h.store.CurrentID(),
	})
}

// SelectSource 切换当前数据源
// POST /api/sources/:id/select
func (h *Handler) SelectSource(c *gin.Context) {
	id := c.Param("id")
	if !h.store.SetCurrent(id) {
		err := &engine.SourceNotLoadedError{ID: id}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_id": id})
}

// DeleteSource 删除数据源
// DELETE /api/sources/:id
func (h *Handler) DeleteSource(c *gin.Context) {
	h.store.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"data_sources": h.store.List(),
		"current_id":   h.store.CurrentID(),
	})
}

// ClearSources 清空全部数据源缓存
// DELETE /api/sources
func (h *Handler) ClearSources(c *gin.Context) {
	h.store.Clear()
	c.JSON(http.StatusOK, gin.H{
		"data_sources": h.store.List(),
		"current_id":   h.store.CurrentID(),
	})
}

// GetOptions 返回当前数据源的筛选选项
// GET /api/options
func (h *Handler) GetOptions(c *gin.Context) {
	ds, ok := h.store.Current()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请先在首页导入数据源"})
		return
	}

	customers, provinces, cities, districts, regions := engine.CollectOptions(ds.Rows)
	c.JSON(http.StatusOK, gin.H{
		"file_name":           ds.FileName,
		"available_customers": customers,
		"available_provinces": provinces,
		"available_cities":    cities,
		"available_districts": districts,
		"available_regions":   regions,
		"total_rows":          len(ds.Rows),
	})
}

// statusCodeFor 错误到 HTTP 状态码的映射
func statusCodeFor(err error) int {
	var missing *engine.MissingColumnError
	var notLoaded *engine.SourceNotLoadedError
	switch {
	case errors.As(err, &missing), errors.Is(err, engine.ErrEmptySheet),
		errors.Is(err, engine.ErrNoTarget), errors.Is(err, engine.ErrEmptySourceList):
		return http.StatusBadRequest
	case errors.As(err, &notLoaded):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrCancelled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
