package codec

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/IshanB-25/excel-splitter-service/internal/model"
)

// XLSX 基于 excelize 的 OOXML 容器编解码器（xlsx/xlsm），同时承担输出格式
type XLSX struct{}

// NewXLSX 创建 OOXML 编解码器
func NewXLSX() *XLSX {
	return &XLSX{}
}

// Decode 将 OOXML 容器字节解析为工作簿模型。
// 解析范围：工作表顺序与可见性、单元格值与公式源文本、样式子集、
// 显式列宽/行高、合并单元格区域。
func (x *XLSX) Decode(data []byte) (*model.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, structuralf(err, "无法解析 xlsx 容器")
	}
	defer f.Close()

	wb := model.NewWorkbook()
	styles := newStyleCache(f)
	for _, name := range f.GetSheetList() {
		sheet, err := x.decodeSheet(f, name, styles)
		if err != nil {
			return nil, err
		}
		wb.AddSheet(sheet)
	}
	return wb, nil
}

func (x *XLSX) decodeSheet(f *excelize.File, name string, styles *styleCache) (*model.Sheet, error) {
	s := model.NewSheet(name)

	// excelize 不区分 hidden 与 veryHidden，两者下游行为一致（均不拆分）
	visible, err := f.GetSheetVisible(name)
	if err != nil {
		return nil, structuralf(err, "读取工作表 %q 可见性失败", name)
	}
	if !visible {
		s.Visibility = model.SheetHidden
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, structuralf(err, "读取工作表 %q 失败", name)
	}

	maxCol := 0
	for r, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
		for c, raw := range row {
			cell, err := x.decodeCell(f, name, r+1, c+1, raw, styles)
			if err != nil {
				return nil, err
			}
			if cell != nil {
				s.SetCell(cell)
			}
		}
	}

	if err := x.decodeMerges(f, name, s); err != nil {
		return nil, err
	}
	maxRow := len(rows)
	for _, m := range s.Merges {
		if m.EndCol > maxCol {
			maxCol = m.EndCol
		}
		if m.EndRow > maxRow {
			maxRow = m.EndRow
		}
	}

	x.decodeDimensions(f, name, s, maxRow, maxCol)
	return s, nil
}

func (x *XLSX) decodeCell(f *excelize.File, sheet string, row, col int, raw string, styles *styleCache) (*model.Cell, error) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return nil, structuralf(err, "工作表 %q 坐标 (%d,%d) 非法", sheet, row, col)
	}

	formula, err := f.GetCellFormula(sheet, axis)
	if err != nil {
		return nil, structuralf(err, "读取工作表 %q 单元格 %s 公式失败", sheet, axis)
	}

	cell := &model.Cell{Row: row, Col: col, Style: styles.lookup(sheet, axis)}

	switch {
	case formula != "":
		// 公式按源文本保存，不求值
		cell.Kind = model.KindFormula
		cell.Value = "=" + formula
	case raw == "":
		// 空白单元格：仅在携带显式样式时保留，否则视为未占用
		if cell.Style == nil {
			return nil, nil
		}
		cell.Kind = model.KindEmpty
	default:
		ct, err := f.GetCellType(sheet, axis)
		if err != nil {
			return nil, structuralf(err, "读取工作表 %q 单元格 %s 类型失败", sheet, axis)
		}
		cell.Kind, cell.Value = typedValue(ct, raw)
	}
	return cell, nil
}

// typedValue 将原始单元格文本按容器声明的类型还原为 Go 值
func typedValue(ct excelize.CellType, raw string) (model.CellKind, interface{}) {
	switch ct {
	case excelize.CellTypeBool:
		return model.KindBool, raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeDate:
		return model.KindDate, raw
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return model.KindNumber, v
		}
		return model.KindText, raw
	default:
		return model.KindText, raw
	}
}

func (x *XLSX) decodeMerges(f *excelize.File, name string, s *model.Sheet) error {
	merges, err := f.GetMergeCells(name)
	if err != nil {
		return structuralf(err, "读取工作表 %q 合并单元格失败", name)
	}
	for _, mc := range merges {
		sc, sr, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return structuralf(err, "工作表 %q 合并区域起点 %q 非法", name, mc.GetStartAxis())
		}
		ec, er, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return structuralf(err, "工作表 %q 合并区域终点 %q 非法", name, mc.GetEndAxis())
		}
		s.Merges = append(s.Merges, model.Merge{StartRow: sr, StartCol: sc, EndRow: er, EndCol: ec})
	}
	return nil
}

// decodeDimensions 采集显式设置的列宽与行高。
// excelize 不直接暴露维度条目列表，这里用远端未占用的列/行探出
// 本表的默认值，再逐列/逐行比对，偏离默认值即视为显式设置。
func (x *XLSX) decodeDimensions(f *excelize.File, name string, s *model.Sheet, maxRow, maxCol int) {
	defaultWidth, err := f.GetColWidth(name, "XFD")
	if err == nil {
		for col := 1; col <= maxCol; col++ {
			colName, err := excelize.ColumnNumberToName(col)
			if err != nil {
				continue
			}
			if w, err := f.GetColWidth(name, colName); err == nil && w != defaultWidth {
				s.ColWidths[col] = w
			}
		}
	}

	defaultHeight, err := f.GetRowHeight(name, excelize.TotalRows)
	if err == nil {
		for row := 1; row <= maxRow; row++ {
			if h, err := f.GetRowHeight(name, row); err == nil && h != defaultHeight {
				s.RowHeights[row] = h
			}
		}
	}
}

// Encode 将工作簿模型序列化为 xlsx 字节。无论输入来自哪种容器变体，
// 输出始终是现代 zip-XML 格式。
func (x *XLSX) Encode(wb *model.Workbook) ([]byte, error) {
	if wb == nil || len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("工作簿不含任何工作表")
	}

	f := excelize.NewFile()
	defer f.Close()

	styleIDs := make(map[*model.Style]int)
	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("设置工作表名 %q 失败: %w", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("创建工作表 %q 失败: %w", sheet.Name, err)
			}
		}
		if err := x.encodeSheet(f, sheet, styleIDs); err != nil {
			return nil, err
		}
		// 工作簿必须保留至少一张可见表，隐藏状态只对非首个工作表回写
		if i > 0 && sheet.Visibility != model.SheetVisible {
			veryHidden := sheet.Visibility == model.SheetVeryHidden
			if err := f.SetSheetVisible(sheet.Name, false, veryHidden); err != nil {
				return nil, fmt.Errorf("设置工作表 %q 可见性失败: %w", sheet.Name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("序列化 xlsx 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (x *XLSX) encodeSheet(f *excelize.File, sheet *model.Sheet, styleIDs map[*model.Style]int) error {
	for col, w := range sheet.ColWidths {
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return fmt.Errorf("工作表 %q 列号 %d 非法: %w", sheet.Name, col, err)
		}
		if err := f.SetColWidth(sheet.Name, colName, colName, w); err != nil {
			return fmt.Errorf("工作表 %q 设置列宽失败: %w", sheet.Name, err)
		}
	}
	for row, h := range sheet.RowHeights {
		if err := f.SetRowHeight(sheet.Name, row, h); err != nil {
			return fmt.Errorf("工作表 %q 设置行高失败: %w", sheet.Name, err)
		}
	}

	for _, coord := range sheet.Coords() {
		if err := x.encodeCell(f, sheet.Name, sheet.Cells[coord], styleIDs); err != nil {
			return err
		}
	}

	for _, m := range sheet.Merges {
		start, err := excelize.CoordinatesToCellName(m.StartCol, m.StartRow)
		if err != nil {
			return fmt.Errorf("工作表 %q 合并区域起点非法: %w", sheet.Name, err)
		}
		end, err := excelize.CoordinatesToCellName(m.EndCol, m.EndRow)
		if err != nil {
			return fmt.Errorf("工作表 %q 合并区域终点非法: %w", sheet.Name, err)
		}
		if err := f.MergeCell(sheet.Name, start, end); err != nil {
			return fmt.Errorf("工作表 %q 合并 %s:%s 失败: %w", sheet.Name, start, end, err)
		}
	}
	return nil
}

func (x *XLSX) encodeCell(f *excelize.File, sheet string, cell *model.Cell, styleIDs map[*model.Style]int) error {
	axis, err := excelize.CoordinatesToCellName(cell.Col, cell.Row)
	if err != nil {
		return fmt.Errorf("工作表 %q 坐标 (%d,%d) 非法: %w", sheet, cell.Row, cell.Col, err)
	}

	switch cell.Kind {
	case model.KindFormula:
		src, _ := cell.Value.(string)
		if err := f.SetCellFormula(sheet, axis, strings.TrimPrefix(src, "=")); err != nil {
			return fmt.Errorf("工作表 %q 单元格 %s 写入公式失败: %w", sheet, axis, err)
		}
	case model.KindEmpty:
		// 仅样式，无值
	default:
		if err := f.SetCellValue(sheet, axis, cell.Value); err != nil {
			return fmt.Errorf("工作表 %q 单元格 %s 写入失败: %w", sheet, axis, err)
		}
	}

	if cell.Style.IsZero() {
		return nil
	}
	id, ok := styleIDs[cell.Style]
	if !ok {
		id, err = f.NewStyle(toExcelizeStyle(cell.Style))
		if err != nil {
			// 样式注册失败只影响该样式，单元格值已写入，不中断
			log.Printf("工作表 %q 单元格 %s 样式注册失败，按默认样式输出: %v", sheet, axis, err)
			styleIDs[cell.Style] = 0
			return nil
		}
		styleIDs[cell.Style] = id
	}
	if id == 0 {
		return nil
	}
	if err := f.SetCellStyle(sheet, axis, axis, id); err != nil {
		return fmt.Errorf("工作表 %q 单元格 %s 应用样式失败: %w", sheet, axis, err)
	}
	return nil
}
