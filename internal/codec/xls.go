package codec

import (
	"bytes"
	"strconv"

	"github.com/extrame/xls"

	"github.com/IshanB-25/excel-splitter-service/internal/model"
)

// XLS 旧式 BIFF 容器（.xls）解码器，基于 extrame/xls。
// 该库只暴露单元格文本，样式、列宽行高与合并区域在旧格式输入下不可达，
// 解码结果为无样式模型；输出仍走 xlsx 编码器。
type XLS struct {
	// Charset BIFF 字符串解码字符集，默认 utf-8
	Charset string
}

// NewXLS 创建 BIFF 解码器
func NewXLS() *XLS {
	return &XLS{Charset: "utf-8"}
}

// Decode 将 BIFF 容器字节解析为工作簿模型
func (x *XLS) Decode(data []byte) (*model.Workbook, error) {
	book, err := xls.OpenReader(bytes.NewReader(data), x.Charset)
	if err != nil {
		return nil, structuralf(err, "无法解析 xls 容器")
	}
	if book == nil {
		return nil, &StructuralError{Reason: "无法解析 xls 容器：缺少工作簿流"}
	}

	wb := model.NewWorkbook()
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		wb.AddSheet(decodeBIFFSheet(ws))
	}
	if len(wb.Sheets) == 0 {
		return nil, &StructuralError{Reason: "xls 容器不含任何工作表"}
	}
	return wb, nil
}

func decodeBIFFSheet(ws *xls.WorkSheet) *model.Sheet {
	s := model.NewSheet(ws.Name)
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := ws.Row(r)
		if row == nil {
			continue
		}
		for c := 0; c < row.LastCol(); c++ {
			raw := row.Col(c)
			if raw == "" {
				continue
			}
			cell := &model.Cell{Row: r + 1, Col: c + 1}
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				cell.Kind, cell.Value = model.KindNumber, v
			} else {
				cell.Kind, cell.Value = model.KindText, raw
			}
			s.SetCell(cell)
		}
	}
	return s
}

// Encode 旧格式仅作为输入支持；输出格式族固定为 xlsx
func (x *XLS) Encode(*model.Workbook) ([]byte, error) {
	return nil, &StructuralError{Reason: "不支持输出 BIFF 格式"}
}
