package splitter

import "github.com/IshanB-25/excel-splitter-service/internal/model"

// Partition 按可见性划分工作表名，保持容器声明顺序。
// Hidden 与 VeryHidden 一律进入隐藏列表，两者下游行为一致（均不拆分）。
func Partition(wb *model.Workbook) (visible, hidden []string) {
	for _, s := range wb.Sheets {
		if s.Visibility == model.SheetVisible {
			visible = append(visible, s.Name)
		} else {
			hidden = append(hidden, s.Name)
		}
	}
	return visible, hidden
}
