package splitter

import (
	"fmt"
	"log"

	"github.com/IshanB-25/excel-splitter-service/internal/model"
)

// ExtractSheet 从源工作簿抽取一张工作表，重建为独立的单表工作簿：
// 复制显式列宽/行高、全部占用单元格（值原样，公式不求值）、样式子集
// 与合并区域。源模型不被修改。
func ExtractSheet(src *model.Workbook, name string) (*model.Workbook, error) {
	srcSheet := src.Sheet(name)
	if srcSheet == nil {
		return nil, fmt.Errorf("工作表 %q 不存在", name)
	}

	dst := model.NewSheet(name)

	for col, w := range srcSheet.ColWidths {
		dst.ColWidths[col] = w
	}
	for row, h := range srcSheet.RowHeights {
		dst.RowHeights[row] = h
	}

	styles := make(map[*model.Style]*model.Style)
	for _, coord := range srcSheet.Coords() {
		cell := srcSheet.Cells[coord]
		dst.SetCell(&model.Cell{
			Row:   cell.Row,
			Col:   cell.Col,
			Kind:  cell.Kind,
			Value: cell.Value,
			Style: copySharedStyle(name, cell.Style, styles),
		})
	}

	// 合并区域原样保留；覆盖空白单元格的合并同样有效
	dst.Merges = append(dst.Merges, srcSheet.Merges...)

	wb := model.NewWorkbook()
	wb.AddSheet(dst)
	return wb, nil
}

// copySharedStyle 复制样式并保持共享关系：源中共用同一样式的单元格，
// 目标中仍共用同一份拷贝
func copySharedStyle(sheet string, st *model.Style, cache map[*model.Style]*model.Style) *model.Style {
	if st == nil {
		return nil
	}
	if copied, ok := cache[st]; ok {
		return copied
	}
	copied := copyStyle(sheet, st)
	cache[st] = copied
	return copied
}

// copyStyle 逐属性复制样式。单个属性复制失败只记录日志并跳过该属性，
// 不影响其余属性，也不中断单元格。
func copyStyle(sheet string, st *model.Style) *model.Style {
	out := &model.Style{}
	if err := copyFont(st, out); err != nil {
		log.Printf("工作表 %q 字体样式未复制: %v", sheet, err)
	}
	if err := copyFill(st, out); err != nil {
		log.Printf("工作表 %q 填充样式未复制: %v", sheet, err)
	}
	if err := copyBorder(st, out); err != nil {
		log.Printf("工作表 %q 边框样式未复制: %v", sheet, err)
	}
	if err := copyAlignment(st, out); err != nil {
		log.Printf("工作表 %q 对齐样式未复制: %v", sheet, err)
	}
	if err := copyNumFmt(st, out); err != nil {
		log.Printf("工作表 %q 数字格式未复制: %v", sheet, err)
	}
	if out.IsZero() {
		return nil
	}
	return out
}

func copyFont(src, dst *model.Style) error {
	if src.Font == nil {
		return nil
	}
	if src.Font.Size < 0 {
		return fmt.Errorf("非法字号 %v", src.Font.Size)
	}
	font := *src.Font
	dst.Font = &font
	return nil
}

func copyFill(src, dst *model.Style) error {
	if src.Fill == nil {
		return nil
	}
	if src.Fill.Type != "pattern" && src.Fill.Type != "gradient" {
		return fmt.Errorf("未知填充类型 %q", src.Fill.Type)
	}
	fill := *src.Fill
	fill.Color = append([]string(nil), src.Fill.Color...)
	dst.Fill = &fill
	return nil
}

// 容器格式的边框线型索引上限
const maxBorderStyle = 13

func copyBorder(src, dst *model.Style) error {
	if src.Border == nil {
		return nil
	}
	for _, edge := range []model.BorderEdge{src.Border.Left, src.Border.Right, src.Border.Top, src.Border.Bottom} {
		if edge.Style < 0 || edge.Style > maxBorderStyle {
			return fmt.Errorf("非法边框线型 %d", edge.Style)
		}
	}
	border := *src.Border
	dst.Border = &border
	return nil
}

func copyAlignment(src, dst *model.Style) error {
	if src.Alignment == nil {
		return nil
	}
	alignment := *src.Alignment
	dst.Alignment = &alignment
	return nil
}

func copyNumFmt(src, dst *model.Style) error {
	if src.NumFmt == nil {
		return nil
	}
	if src.NumFmt.ID < 0 {
		return fmt.Errorf("非法数字格式 ID %d", src.NumFmt.ID)
	}
	nf := *src.NumFmt
	dst.NumFmt = &nf
	return nil
}
