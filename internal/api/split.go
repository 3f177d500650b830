package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/IshanB-25/excel-splitter-service/internal/archive"
	"github.com/IshanB-25/excel-splitter-service/internal/codec"
	"github.com/IshanB-25/excel-splitter-service/internal/service/splitter"
	"github.com/IshanB-25/excel-splitter-service/internal/store"
	"github.com/IshanB-25/excel-splitter-service/internal/util"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeZip  = "application/zip"
)

// SplitExcel 拆分上传的 Excel 文件
// POST /split-excel (multipart/form-data, 字段名 file)
//
// 单张工作表成功时直接返回 xlsx；多张时打包为 zip 返回。
func (h *Handler) SplitExcel(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请上传文件"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未选择文件"})
		return
	}

	if !util.AllowedFile(header.Filename, h.cfg.Limits.AllowedExtensions) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "不支持的文件类型，允许: " + strings.Join(h.cfg.Limits.AllowedExtensions, ", "),
		})
		return
	}

	maxBytes := h.cfg.Limits.MaxFileSizeBytes()
	if header.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("文件过大，最大支持 %d MB", h.cfg.Limits.MaxFileSizeMB),
		})
		return
	}

	// header.Size 来自客户端声明，按上限截断读取后再核对一次
	content, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败"})
		return
	}
	if int64(len(content)) > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("文件过大，最大支持 %d MB", h.cfg.Limits.MaxFileSizeMB),
		})
		return
	}

	jobID := uuid.New().String()
	log.Printf("[%s] 收到文件: %s (%.2f MB)", jobID, header.Filename, float64(len(content))/(1024*1024))

	start := time.Now()
	result, err := h.splitter.Split(content, header.Filename)
	duration := time.Since(start)

	h.recordSplit(jobID, header.Filename, int64(len(content)), result, err, duration)

	if err != nil {
		h.splitError(c, jobID, err)
		return
	}

	log.Printf("[%s] 拆分完成: %d 个文件，%d 张失败，耗时 %s",
		jobID, len(result.Files), len(result.Failures), duration)

	if len(result.Files) == 1 {
		name := result.Order[0]
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
		c.Data(http.StatusOK, mimeXLSX, result.Files[name])
		return
	}

	zipBytes, err := archive.Build(result.Files, result.Order)
	if err != nil {
		log.Printf("[%s] 打包 zip 失败: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务内部错误"})
		return
	}

	base := util.SanitizeFilename(strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)))
	zipName := base + "_split.zip"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", zipName))
	c.Data(http.StatusOK, mimeZip, zipBytes)
}

// splitError 把流水线的终态错误映射为 HTTP 响应。
// 内部细节只进日志，不回显给外部调用方。
func (h *Handler) splitError(c *gin.Context, jobID string, err error) {
	var structural *codec.StructuralError
	switch {
	case errors.As(err, &structural):
		log.Printf("[%s] 无效的 Excel 文件: %v", jobID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 Excel 文件: " + structural.Reason})
	case errors.Is(err, splitter.ErrTooManySheets):
		log.Printf("[%s] %v", jobID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, splitter.ErrNoVisibleSheets):
		log.Printf("[%s] %v", jobID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件中没有可见的工作表"})
	case errors.Is(err, splitter.ErrNoSheetsProcessed):
		log.Printf("[%s] %v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "没有任何工作表处理成功"})
	default:
		log.Printf("[%s] 未预期的错误: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务内部错误"})
	}
}

// recordSplit 写入拆分历史；历史记录是辅助功能，失败只记日志
func (h *Handler) recordSplit(jobID, filename string, size int64, result *splitter.Result, splitErr error, duration time.Duration) {
	if h.store == nil {
		return
	}

	entry := &store.SplitLog{
		JobID:      jobID,
		Filename:   filename,
		FileSize:   size,
		DurationMS: duration.Milliseconds(),
	}
	switch {
	case splitErr != nil:
		entry.Status = "failed"
		entry.ErrorMessage = splitErr.Error()
	case len(result.Failures) > 0:
		entry.Status = "partial"
	default:
		entry.Status = "success"
	}
	if result != nil {
		entry.TotalSheets = len(result.Order) + len(result.Hidden) + len(result.Failures)
		entry.HiddenSheets = len(result.Hidden)
		entry.ProducedFiles = len(result.Files)
		entry.FailedSheets = len(result.Failures)
	}

	if err := h.store.RecordSplit(entry); err != nil {
		log.Printf("[%s] 写入拆分历史失败: %v", jobID, err)
	}
}
