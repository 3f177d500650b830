package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/IshanB-25/excel-splitter-service/internal/api"
	"github.com/IshanB-25/excel-splitter-service/internal/config"
	"github.com/IshanB-25/excel-splitter-service/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store（拆分历史）
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "splitter.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		// 历史记录是辅助功能，初始化失败时降级运行
		log.Printf("拆分历史不可用: %v", err)
		sqliteStore = nil
	}

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
	}

	// multipart 内存缓冲上限与上传大小上限保持一致
	s.router.MaxMultipartMemory = cfg.Limits.MaxFileSizeBytes()

	s.setupRoutes(cfg)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(cfg *config.AppConfig) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := api.NewHandler(cfg, s.store)
	handler.RegisterRoutes(s.router)
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放资源
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
