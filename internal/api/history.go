package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IshanB-25/excel-splitter-service/internal/store"
)

// ListHistory 查询最近的拆分历史
// GET /api/history?limit=50
func (h *Handler) ListHistory(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "拆分历史不可用"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.store.ListHistory(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询拆分历史失败"})
		return
	}
	if logs == nil {
		logs = []*store.SplitLog{}
	}
	c.JSON(http.StatusOK, gin.H{"history": logs})
}
