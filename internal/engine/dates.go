package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"salescope/internal/model"
)

// excelEpoch Excel 1900 日期系统的修正基准日（1899-12-30）
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	yearMonthPrefixRe = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})`)
	cnYearMonthRe     = regexp.MustCompile(`^(\d{4})年(\d{1,2})月`)
)

// ExtractMonth 从日期单元格尽力提取 "YYYY-MM" 月份，失败静默返回空串
func ExtractMonth(cell model.CellValue) string {
	switch cell.Kind {
	case model.CellDateTime:
		if cell.Float > 0 {
			return serialToTime(cell.Float).Format("2006-01")
		}
	case model.CellDateTimeText:
		if len(cell.Text) >= 7 {
			return cell.Text[:7]
		}
	case model.CellText:
		return extractMonthFromText(cell.Text)
	case model.CellFloat:
		if cell.Float > 0 && cell.Float < 100000 {
			return serialToTime(cell.Float).Format("2006-01")
		}
	}
	return ""
}

// extractMonthFromText 按固定顺序尝试各文本格式，首个命中者生效
func extractMonthFromText(s string) string {
	s = strings.TrimSpace(s)

	// 2024-01-15 / 2024/1/15 / 2024.01.15（含尾部时间也能命中前缀）
	if m := yearMonthPrefixRe.FindStringSubmatch(s); m != nil {
		return formatYearMonth(m[1], m[2])
	}

	// 2024年1月15日 / 2024年1月
	if m := cnYearMonthRe.FindStringSubmatch(s); m != nil {
		return formatYearMonth(m[1], m[2])
	}

	// 20240115
	if len(s) >= 8 && isASCIIDigits(s[:8]) {
		return s[:4] + "-" + s[4:6]
	}

	// 常规日期格式兜底
	for _, layout := range []string{"2006-01-02", "2006/01/02", "2006.01.02"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01")
		}
	}

	return ""
}

// serialToTime 序列天数转日期，仅用于月份提取，不带闰年修正
func serialToTime(serial float64) time.Time {
	return excelEpoch.AddDate(0, 0, int(serial))
}

// ParseOrderDate 解析订单日期：接受 Excel 序列数或 Y-M-D / Y/M/D 文本，
// 忽略尾部时间部分，失败时 ok 为 false
func ParseOrderDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// 纯数字按序列数处理（1900 系统的 1900-02-29 历史假日需要 -2 修正）
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 1 {
			return time.Time{}, false
		}
		return excelEpoch.AddDate(0, 0, int(f)-2), true
	}

	// 去掉尾部时间
	if i := strings.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}

	sep := ""
	switch {
	case strings.Contains(s, "/"):
		sep = "/"
	case strings.Contains(s, "-"):
		sep = "-"
	default:
		return time.Time{}, false
	}

	parts := strings.Split(s, sep)
	if len(parts) < 3 {
		return time.Time{}, false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date 会把 2 月 31 日这类输入滚动到下个月，滚动即非法日期
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// SerialDateToString 将序列数渲染为 "Y/M/D" 文本，用于政策明细的日期列
func SerialDateToString(serial float64) string {
	if serial < 1 {
		return ""
	}
	d := excelEpoch.AddDate(0, 0, int(serial)-2)
	return fmt.Sprintf("%d/%d/%d", d.Year(), int(d.Month()), d.Day())
}

// formatYearMonth 月份补零成固定 7 位 "YYYY-MM"
func formatYearMonth(year, month string) string {
	if len(month) == 1 {
		month = "0" + month
	}
	return year + "-" + month
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
