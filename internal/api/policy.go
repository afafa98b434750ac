package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"salescope/internal/engine"
	"salescope/internal/model"
	"salescope/internal/xlsx"
)

// MatchPolicy 上传政策工作簿，为销售明细匹配活动政策
// POST /api/policy/match
func (h *Handler) MatchPolicy(c *gin.Context) {
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

	tempFilePath := filepath.Join(os.TempDir(), fmt.Sprintf("salescope_policy_%d_%s", time.Now().Unix(), uploadedFile.Filename))
	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	start := time.Now()

	salesRows, policies, err := xlsx.ReadPolicyWorkbook(tempFilePath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matched := engine.MatchPolicies(salesRows, policies)

	c.JSON(http.StatusOK, model.PolicyMatchResult{
		FilePath:   uploadedFile.Filename,
		Rows:       matched,
		TotalRows:  len(matched),
		LoadTimeMs: time.Since(start).Milliseconds(),
	})
}
