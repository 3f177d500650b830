package api

import (
	"github.com/gin-gonic/gin"

	"github.com/IshanB-25/excel-splitter-service/internal/config"
	"github.com/IshanB-25/excel-splitter-service/internal/service/splitter"
	"github.com/IshanB-25/excel-splitter-service/internal/store"
)

// ServiceName 服务标识
const ServiceName = "excel-splitter"

// ServiceVersion 服务版本
const ServiceVersion = "2.1.0"

// Handler API 处理器
type Handler struct {
	cfg      *config.AppConfig
	splitter *splitter.Splitter
	store    *store.Store
}

// NewHandler 创建 API 处理器。store 允许为 nil（历史记录功能降级）。
func NewHandler(cfg *config.AppConfig, st *store.Store) *Handler {
	return &Handler{
		cfg:      cfg,
		splitter: splitter.New(splitter.Config{MaxSheets: cfg.Limits.MaxSheets}),
		store:    st,
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	// 服务信息与健康检查
	router.GET("/", h.Index)
	router.GET("/health", h.Health)

	// 拆分上传的 Excel
	router.POST("/split-excel", h.SplitExcel)

	// 拆分历史
	api := router.Group("/api")
	{
		api.GET("/history", h.ListHistory)
	}
}
