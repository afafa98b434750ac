package model

import "strconv"

// CellKind 单元格类型标记
type CellKind int

const (
	CellEmpty        CellKind = iota // 空单元格
	CellInteger                      // 整数
	CellFloat                        // 浮点数
	CellText                         // 文本
	CellBool                         // 布尔
	CellDateTime                     // 日期时间（Excel 序列数）
	CellDateTimeText                 // ISO 日期时间文本
	CellDurationText                 // ISO 时长文本
	CellError                        // 错误单元格
)

// CellValue 类型化单元格值，由外部表格读取层产出，核心只消费不生产
type CellValue struct {
	Kind  CellKind
	Int   int64
	Float float64
	Text  string
	Bool  bool
}

// IntCell 整数单元格
func IntCell(v int64) CellValue {
	return CellValue{Kind: CellInteger, Int: v}
}

// FloatCell 浮点数单元格
func FloatCell(v float64) CellValue {
	return CellValue{Kind: CellFloat, Float: v}
}

// TextCell 文本单元格
func TextCell(s string) CellValue {
	return CellValue{Kind: CellText, Text: s}
}

// BoolCell 布尔单元格
func BoolCell(b bool) CellValue {
	return CellValue{Kind: CellBool, Bool: b}
}

// DateTimeCell 日期时间单元格（序列天数）
func DateTimeCell(serial float64) CellValue {
	return CellValue{Kind: CellDateTime, Float: serial}
}

// DateTimeTextCell ISO 日期时间文本单元格
func DateTimeTextCell(s string) CellValue {
	return CellValue{Kind: CellDateTimeText, Text: s}
}

// DurationTextCell ISO 时长文本单元格
func DurationTextCell(s string) CellValue {
	return CellValue{Kind: CellDurationText, Text: s}
}

// ErrorCell 错误单元格
func ErrorCell(marker string) CellValue {
	return CellValue{Kind: CellError, Text: marker}
}

// EmptyCell 空单元格
func EmptyCell() CellValue {
	return CellValue{Kind: CellEmpty}
}

// String 渲染为显示文本，数字用自然十进制形式，错误单元格用诊断占位符
func (c CellValue) String() string {
	switch c.Kind {
	case CellInteger:
		return strconv.FormatInt(c.Int, 10)
	case CellFloat, CellDateTime:
		return strconv.FormatFloat(c.Float, 'f', -1, 64)
	case CellText, CellDateTimeText, CellDurationText:
		return c.Text
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellError:
		return "#ERROR(" + c.Text + ")"
	default:
		return ""
	}
}
