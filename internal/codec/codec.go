package codec

import (
	"bytes"
	"fmt"

	"github.com/IshanB-25/excel-splitter-service/internal/model"
)

// Codec 电子表格容器编解码能力。Decode 将原始字节解析为内存工作簿模型，
// Encode 将工作簿模型序列化回容器字节。
type Codec interface {
	Decode(data []byte) (*model.Workbook, error)
	Encode(wb *model.Workbook) ([]byte, error)
}

// StructuralError 容器结构错误：字节不是有效的电子表格容器，
// 或容器缺失必要部件。不可重试，整个请求应被拒绝。
type StructuralError struct {
	Reason string
	Err    error
}

func (e *StructuralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

func structuralf(err error, format string, args ...interface{}) *StructuralError {
	return &StructuralError{Reason: fmt.Sprintf(format, args...), Err: err}
}

var (
	zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}                         // OOXML（xlsx/xlsm）
	oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1} // OLE 复合文档（xls）
)

// Detect 根据文件头魔数识别容器格式族，返回对应的编解码器。
// 无法识别时返回 StructuralError，而非静默的部分成功。
func Detect(data []byte) (Codec, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return NewXLSX(), nil
	case bytes.HasPrefix(data, oleMagic):
		return NewXLS(), nil
	default:
		return nil, &StructuralError{Reason: "无法识别的文件格式，仅支持 xlsx/xlsm/xls 容器"}
	}
}
