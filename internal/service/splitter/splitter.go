package splitter

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/IshanB-25/excel-splitter-service/internal/codec"
	"github.com/IshanB-25/excel-splitter-service/internal/model"
	"github.com/IshanB-25/excel-splitter-service/internal/util"
)

// DefaultMaxSheets 未配置时的工作表数量上限
const DefaultMaxSheets = 100

// OutputExtension 输出文件统一使用现代 zip-XML 格式
const OutputExtension = ".xlsx"

// Splitter 工作簿拆分流水线：解码 → 可见性筛选 → 逐表抽取 → 编码。
// 请求间无共享可变状态，可并发使用。
type Splitter struct {
	maxSheets int
	encoder   codec.Codec
}

// Config 拆分流水线配置
type Config struct {
	// MaxSheets 单个工作簿允许的工作表总数上限，0 表示取默认值
	MaxSheets int
}

// New 创建拆分流水线
func New(cfg Config) *Splitter {
	maxSheets := cfg.MaxSheets
	if maxSheets <= 0 {
		maxSheets = DefaultMaxSheets
	}
	return &Splitter{
		maxSheets: maxSheets,
		encoder:   codec.NewXLSX(),
	}
}

// Result 一次拆分的结果
type Result struct {
	// Files 输出文件名到文件字节的映射
	Files map[string][]byte
	// Order 输出文件名，按源工作表顺序排列，用于确定性遍历
	Order []string
	// Hidden 被跳过的隐藏工作表名
	Hidden []string
	// Failures 处理失败的工作表记录（失败的表不出现在 Files 中）
	Failures []SheetFailure
}

// Split 把上传的工作簿按可见工作表拆分为独立的 xlsx 文件。
// filename 仅用于推导输出文件的基础名，不影响容器内的工作表名。
//
// 终态错误：codec.StructuralError（容器不可解析）、ErrTooManySheets、
// ErrNoVisibleSheets、ErrNoSheetsProcessed。单表失败不构成终态错误。
func (sp *Splitter) Split(data []byte, filename string) (*Result, error) {
	c, err := codec.Detect(data)
	if err != nil {
		return nil, err
	}
	wb, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return sp.SplitWorkbook(wb, filename)
}

// SplitWorkbook 对已加载的工作簿模型执行拆分
func (sp *Splitter) SplitWorkbook(wb *model.Workbook, filename string) (*Result, error) {
	// 数量上限在可见性划分之前检查，超限时整体拒绝，不产生部分输出
	if n := len(wb.Sheets); n > sp.maxSheets {
		return nil, fmt.Errorf("%w：共 %d 张，上限 %d", ErrTooManySheets, n, sp.maxSheets)
	}

	visible, hidden := Partition(wb)
	if len(hidden) > 0 {
		log.Printf("跳过 %d 张隐藏工作表: %s", len(hidden), strings.Join(hidden, ", "))
	}
	if len(visible) == 0 {
		return nil, ErrNoVisibleSheets
	}

	base := util.SanitizeFilename(strings.TrimSuffix(filename, filepath.Ext(filename)))
	result := &Result{
		Files:  make(map[string][]byte),
		Hidden: hidden,
	}

	for _, name := range visible {
		blob, err := sp.extractOne(wb, name)
		if err != nil {
			// 单表失败隔离在表边界内：记录后继续处理其余工作表
			log.Printf("工作表 %q 处理失败: %v", name, err)
			result.Failures = append(result.Failures, SheetFailure{Sheet: name, Err: err})
			continue
		}
		result.add(sp.outputName(base, name), blob)
	}

	if len(result.Files) == 0 {
		return nil, fmt.Errorf("%w（共 %d 张可见工作表）", ErrNoSheetsProcessed, len(visible))
	}
	return result, nil
}

func (sp *Splitter) extractOne(src *model.Workbook, name string) ([]byte, error) {
	single, err := ExtractSheet(src, name)
	if err != nil {
		return nil, err
	}
	return sp.encoder.Encode(single)
}

func (sp *Splitter) outputName(base, sheetName string) string {
	return fmt.Sprintf("%s_%s%s", base, util.SanitizeFilename(sheetName), OutputExtension)
}

// add 收录一个输出文件。不同工作表名净化后可能碰撞，追加序号保证
// 每张成功的表都保留一个输出
func (r *Result) add(name string, blob []byte) {
	if _, exists := r.Files[name]; exists {
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		for i := 2; ; i++ {
			candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
			if _, taken := r.Files[candidate]; !taken {
				name = candidate
				break
			}
		}
	}
	r.Files[name] = blob
	r.Order = append(r.Order, name)
}
