package codec

import (
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/IshanB-25/excel-splitter-service/internal/model"
)

// styleCache 解码时按源样式 ID 去重：同一 ID 的单元格共享同一个模型样式
type styleCache struct {
	f      *excelize.File
	byID   map[int]*model.Style
	warned map[int]bool
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{
		f:      f,
		byID:   make(map[int]*model.Style),
		warned: make(map[int]bool),
	}
}

// lookup 解析单元格的样式。样式 ID 0 为容器默认样式，视为未显式设置。
// 样式表读取失败只记录日志并按无样式处理，不影响值的解析。
func (c *styleCache) lookup(sheet, axis string) *model.Style {
	id, err := c.f.GetCellStyle(sheet, axis)
	if err != nil || id == 0 {
		return nil
	}
	if cached, ok := c.byID[id]; ok {
		return cached
	}
	st, err := c.f.GetStyle(id)
	if err != nil {
		if !c.warned[id] {
			log.Printf("读取样式 %d 失败，相关单元格按默认样式处理: %v", id, err)
			c.warned[id] = true
		}
		c.byID[id] = nil
		return nil
	}
	ms := fromExcelizeStyle(st)
	if ms.IsZero() {
		ms = nil
	}
	c.byID[id] = ms
	return ms
}

func fromExcelizeStyle(st *excelize.Style) *model.Style {
	if st == nil {
		return nil
	}
	ms := &model.Style{}

	if st.Font != nil {
		ms.Font = &model.Font{
			Family:    st.Font.Family,
			Size:      st.Font.Size,
			Bold:      st.Font.Bold,
			Italic:    st.Font.Italic,
			Underline: st.Font.Underline,
			Color:     st.Font.Color,
		}
	}

	if st.Fill.Type != "" {
		ms.Fill = &model.Fill{
			Type:    st.Fill.Type,
			Pattern: st.Fill.Pattern,
			Color:   append([]string(nil), st.Fill.Color...),
			Shading: st.Fill.Shading,
		}
	}

	if border := fromExcelizeBorder(st.Border); border != nil {
		ms.Border = border
	}

	if st.Alignment != nil {
		ms.Alignment = &model.Alignment{
			Horizontal: st.Alignment.Horizontal,
			Vertical:   st.Alignment.Vertical,
			WrapText:   st.Alignment.WrapText,
		}
	}

	if st.NumFmt != 0 || st.CustomNumFmt != nil {
		nf := &model.NumberFormat{ID: st.NumFmt}
		if st.CustomNumFmt != nil {
			nf.Custom = *st.CustomNumFmt
		}
		ms.NumFmt = nf
	}

	return ms
}

func fromExcelizeBorder(edges []excelize.Border) *model.Border {
	if len(edges) == 0 {
		return nil
	}
	b := &model.Border{}
	found := false
	for _, e := range edges {
		edge := model.BorderEdge{Style: e.Style, Color: e.Color}
		switch e.Type {
		case "left":
			b.Left = edge
		case "right":
			b.Right = edge
		case "top":
			b.Top = edge
		case "bottom":
			b.Bottom = edge
		default:
			// 对角线等其它边不在保留范围内
			continue
		}
		found = true
	}
	if !found {
		return nil
	}
	return b
}

func toExcelizeStyle(ms *model.Style) *excelize.Style {
	st := &excelize.Style{}

	if ms.Font != nil {
		st.Font = &excelize.Font{
			Family:    ms.Font.Family,
			Size:      ms.Font.Size,
			Bold:      ms.Font.Bold,
			Italic:    ms.Font.Italic,
			Underline: ms.Font.Underline,
			Color:     ms.Font.Color,
		}
	}

	if ms.Fill != nil {
		st.Fill = excelize.Fill{
			Type:    ms.Fill.Type,
			Pattern: ms.Fill.Pattern,
			Color:   append([]string(nil), ms.Fill.Color...),
			Shading: ms.Fill.Shading,
		}
	}

	if ms.Border != nil {
		st.Border = toExcelizeBorder(ms.Border)
	}

	if ms.Alignment != nil {
		st.Alignment = &excelize.Alignment{
			Horizontal: ms.Alignment.Horizontal,
			Vertical:   ms.Alignment.Vertical,
			WrapText:   ms.Alignment.WrapText,
		}
	}

	if ms.NumFmt != nil {
		if ms.NumFmt.Custom != "" {
			custom := ms.NumFmt.Custom
			st.CustomNumFmt = &custom
		} else {
			st.NumFmt = ms.NumFmt.ID
		}
	}

	return st
}

func toExcelizeBorder(b *model.Border) []excelize.Border {
	var edges []excelize.Border
	add := func(kind string, e model.BorderEdge) {
		if e.Style == 0 && e.Color == "" {
			return
		}
		edges = append(edges, excelize.Border{Type: kind, Style: e.Style, Color: e.Color})
	}
	add("left", b.Left)
	add("right", b.Right)
	add("top", b.Top)
	add("bottom", b.Bottom)
	return edges
}
