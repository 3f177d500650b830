package model

import "sort"

// Visibility 工作表可见性状态
type Visibility int

const (
	SheetVisible    Visibility = iota // 可见
	SheetHidden                       // 隐藏
	SheetVeryHidden                   // 深度隐藏（仅 VBA 可恢复）
)

// CellKind 单元格值类型
type CellKind int

const (
	KindEmpty   CellKind = iota // 空白（可能仅携带样式）
	KindNumber                  // 数值
	KindText                    // 文本
	KindBool                    // 布尔
	KindFormula                 // 公式（按源文本原样保存，不求值）
	KindDate                    // 日期/时间
)

// Coord 单元格坐标，行列均从 1 开始
type Coord struct {
	Row int
	Col int
}

// Cell 单元格
type Cell struct {
	Row   int
	Col   int
	Kind  CellKind
	Value interface{} // KindFormula 时为公式源文本（含前导 =）
	Style *Style
}

// Merge 合并单元格区域（左上角 + 右下角）
type Merge struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// Sheet 单个工作表：稀疏单元格网格 + 尺寸 + 合并区域
type Sheet struct {
	Name       string
	Visibility Visibility
	Cells      map[Coord]*Cell
	ColWidths  map[int]float64 // 仅记录显式设置过的列宽
	RowHeights map[int]float64 // 仅记录显式设置过的行高
	Merges     []Merge
}

// NewSheet 创建空工作表
func NewSheet(name string) *Sheet {
	return &Sheet{
		Name:       name,
		Visibility: SheetVisible,
		Cells:      make(map[Coord]*Cell),
		ColWidths:  make(map[int]float64),
		RowHeights: make(map[int]float64),
	}
}

// SetCell 写入单元格；同一坐标重复写入时覆盖，保证坐标唯一
func (s *Sheet) SetCell(c *Cell) {
	if c == nil || c.Row < 1 || c.Col < 1 {
		return
	}
	s.Cells[Coord{Row: c.Row, Col: c.Col}] = c
}

// CellAt 读取指定坐标的单元格，不存在时返回 nil
func (s *Sheet) CellAt(row, col int) *Cell {
	return s.Cells[Coord{Row: row, Col: col}]
}

// Coords 返回按行优先排序的占用坐标，便于确定性遍历
func (s *Sheet) Coords() []Coord {
	coords := make([]Coord, 0, len(s.Cells))
	for c := range s.Cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
	return coords
}

// Workbook 工作簿：按容器声明顺序排列的工作表集合
type Workbook struct {
	Sheets []*Sheet
}

// NewWorkbook 创建空工作簿
func NewWorkbook() *Workbook {
	return &Workbook{}
}

// AddSheet 追加工作表
func (w *Workbook) AddSheet(s *Sheet) {
	w.Sheets = append(w.Sheets, s)
}

// Sheet 按名称查找工作表，未找到返回 nil
func (w *Workbook) Sheet(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SheetNames 按顺序返回全部工作表名
func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}
