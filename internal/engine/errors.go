package engine

import (
	"errors"
	"fmt"
)

// 结构性失败一律上抛给调用方，不在内部重试
var (
	// ErrEmptySheet 工作表为空（含表头共零行）
	ErrEmptySheet = errors.New("工作表为空")
	// ErrCancelled 在检查点观测到协作式取消，调用方不得自动重试
	ErrCancelled = errors.New("用户取消操作")
	// ErrNoTarget 趋势分析未指定目标
	ErrNoTarget = errors.New("请选择分析目标")
	// ErrEmptySourceList 合并时数据源列表为空
	ErrEmptySourceList = errors.New("数据源列表为空")
)

// MissingColumnError 表头缺少必需列
type MissingColumnError struct {
	Field string // 缺失的列名
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("缺少必需列: %s", e.Field)
}

// SourceNotLoadedError 数据源未加载
type SourceNotLoadedError struct {
	ID string
}

func (e *SourceNotLoadedError) Error() string {
	return fmt.Sprintf("数据源不存在: %s", e.ID)
}
