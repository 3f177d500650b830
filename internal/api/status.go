package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Index 服务信息
// GET /
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     ServiceName,
		"version":     ServiceVersion,
		"description": "按工作表拆分 Excel 文件，保留数据、公式与基础格式",
		"endpoints": gin.H{
			"POST /split-excel": "上传 Excel 文件并按工作表拆分",
			"GET /health":       "健康检查",
			"GET /api/history":  "拆分历史",
			"GET /":             "服务信息",
		},
		"features": []string{
			"保留单元格值与公式",
			"保留合并单元格",
			"保留列宽与行高",
			"保留基础单元格格式",
			"保留数字格式",
		},
		"configuration": gin.H{
			"max_file_size":      fmt.Sprintf("%d MB", h.cfg.Limits.MaxFileSizeMB),
			"max_sheets":         h.cfg.Limits.MaxSheets,
			"allowed_extensions": h.cfg.Limits.AllowedExtensions,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health 健康检查
// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
