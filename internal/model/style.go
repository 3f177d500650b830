package model

// Font 字体属性
type Font struct {
	Family    string
	Size      float64
	Bold      bool
	Italic    bool
	Underline string
	Color     string
}

// Fill 填充属性；Pattern 使用容器格式的图案索引（1 为实心填充）
type Fill struct {
	Type    string // pattern / gradient
	Pattern int
	Color   []string
	Shading int
}

// BorderEdge 单边边框；Style 使用容器格式的线型索引（0-13）
type BorderEdge struct {
	Style int
	Color string
}

// Border 四边边框
type Border struct {
	Left   BorderEdge
	Right  BorderEdge
	Top    BorderEdge
	Bottom BorderEdge
}

// Alignment 对齐方式
type Alignment struct {
	Horizontal string
	Vertical   string
	WrapText   bool
}

// NumberFormat 数字格式；内置格式用 ID，自定义格式用 Custom 模式串
type NumberFormat struct {
	ID     int
	Custom string
}

// Style 单元格样式子集：字体、填充、边框、对齐、数字格式
type Style struct {
	Font      *Font
	Fill      *Fill
	Border    *Border
	Alignment *Alignment
	NumFmt    *NumberFormat
}

// IsZero 判断样式是否不含任何属性
func (s *Style) IsZero() bool {
	return s == nil ||
		(s.Font == nil && s.Fill == nil && s.Border == nil && s.Alignment == nil && s.NumFmt == nil)
}
