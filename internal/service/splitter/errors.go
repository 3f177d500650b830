package splitter

import "errors"

// 拆分流水线的终态错误集合。容器结构错误见 codec.StructuralError。
var (
	// ErrTooManySheets 工作表总数超过上限，在任何抽取开始前整体拒绝
	ErrTooManySheets = errors.New("工作表数量超出上限")

	// ErrNoVisibleSheets 工作簿中没有可见的工作表
	ErrNoVisibleSheets = errors.New("没有可见的工作表")

	// ErrNoSheetsProcessed 存在可见工作表，但全部处理失败
	ErrNoSheetsProcessed = errors.New("没有任何工作表处理成功")
)

// SheetFailure 单个工作表的处理失败记录。失败被隔离在工作表边界内，
// 不会中断批次中其余工作表的处理。
type SheetFailure struct {
	Sheet string
	Err   error
}
