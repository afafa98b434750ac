// Package xlsx 将 excelize 打开的工作簿适配为核心消费的类型化单元格网格。
// 容器格式的字节级解码完全交给 excelize，本包只做类型归一。
package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"salescope/internal/model"
)

// ReadGrid 读取文件第一个工作表，返回类型化单元格网格（首行为表头）
func ReadGrid(filePath string) ([][]model.CellValue, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法打开Excel文件: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel文件没有工作表")
	}

	return readSheet(f, sheets[0])
}

// readSheet 读取单个工作表为单元格网格
func readSheet(f *excelize.File, sheetName string) ([][]model.CellValue, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("无法读取工作表: %w", err)
	}

	// 日期判定按样式索引缓存，一张表通常只有少数几个样式
	dateStyles := make(map[int]bool)

	grid := make([][]model.CellValue, len(rows))
	for rowIdx, row := range rows {
		cells := make([]model.CellValue, len(row))
		for colIdx, raw := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				cells[colIdx] = model.EmptyCell()
				continue
			}
			cellType, _ := f.GetCellType(sheetName, cellName)
			styleID, _ := f.GetCellStyle(sheetName, cellName)
			cells[colIdx] = classifyCell(cellType, raw, isDateStyle(f, styleID, dateStyles))
		}
		grid[rowIdx] = cells
	}
	return grid, nil
}

// classifyCell 按单元格类型与原始值归一为 CellValue。
// 原始模式下日期以序列数出现，靠单元格的日期数字格式识别，
// 归一为日期变体后由核心的月份提取换算。
func classifyCell(cellType excelize.CellType, raw string, dateStyled bool) model.CellValue {
	if raw == "" {
		return model.EmptyCell()
	}

	switch cellType {
	case excelize.CellTypeBool:
		return model.BoolCell(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeError:
		return model.ErrorCell(raw)
	case excelize.CellTypeDate:
		return model.DateTimeTextCell(raw)
	case excelize.CellTypeInlineString, excelize.CellTypeSharedString:
		return model.TextCell(raw)
	}

	// 日期格式的数字单元格：原始值就是序列天数
	if dateStyled {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			return model.DateTimeCell(serial)
		}
	}

	// 数字或未标注类型：能按数值解析就归一为数值
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return model.IntCell(i)
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return model.FloatCell(v)
	}
	return model.TextCell(raw)
}

// builtinDateNumFmts 内置的日期/时间数字格式 ID（ECMA-376 18.8.30）
var builtinDateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true,
	20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true,
	33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true,
	56: true, 57: true, 58: true,
}

// isDateStyle 单元格样式是否为日期数字格式，结果按样式索引缓存
func isDateStyle(f *excelize.File, styleID int, cache map[int]bool) bool {
	if v, ok := cache[styleID]; ok {
		return v
	}

	isDate := false
	if style, err := f.GetStyle(styleID); err == nil && style != nil {
		if builtinDateNumFmts[style.NumFmt] {
			isDate = true
		} else if style.CustomNumFmt != nil {
			isDate = customFmtHasDateTokens(*style.CustomNumFmt)
		}
	}

	cache[styleID] = isDate
	return isDate
}

// customFmtHasDateTokens 自定义数字格式是否含日期/时间占位符。
// 引号段、反斜杠转义与 [] 条件块里的字符不算占位符。
func customFmtHasDateTokens(fmtCode string) bool {
	inQuote := false
	for i := 0; i < len(fmtCode); i++ {
		c := fmtCode[i]
		switch {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == '\\':
			i++
		case c == '[':
			for i < len(fmtCode) && fmtCode[i] != ']' {
				i++
			}
		case c == 'y' || c == 'm' || c == 'd' || c == 'h' || c == 's' ||
			c == 'Y' || c == 'M' || c == 'D' || c == 'H' || c == 'S':
			return true
		}
	}
	return false
}
