package engine

import (
	"testing"
	"time"

	"salescope/internal/model"
)

func TestExtractMonth_SerialValues(t *testing.T) {
	t.Parallel()

	// 1899-12-30 基准：序列 1 是 1899-12-31，序列 45000 是 2023-03-15
	cases := []struct {
		serial float64
		want   string
	}{
		{1, "1899-12"},
		{45000, "2023-03"},
		{45292, "2024-01"}, // 2024-01-01
	}
	for _, tc := range cases {
		if got := ExtractMonth(model.DateTimeCell(tc.serial)); got != tc.want {
			t.Errorf("ExtractMonth(serial %v) = %q, want %q", tc.serial, got, tc.want)
		}
	}
}

func TestExtractMonth_TextFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
	}{
		{"2024-01-15", "2024-01"},
		{"2024/1/15", "2024-01"},
		{"2024.01.15", "2024-01"},
		{"2024-01-15 10:30:00", "2024-01"},
		{"2024年1月3日", "2024-01"},
		{"2024年1月", "2024-01"},
		{"20240115", "2024-01"},
		{"不是日期", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ExtractMonth(model.TextCell(tc.text)); got != tc.want {
			t.Errorf("ExtractMonth(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestExtractMonth_DateTimeTextPrefix(t *testing.T) {
	t.Parallel()

	if got := ExtractMonth(model.DateTimeTextCell("2024-05-01T00:00:00")); got != "2024-05" {
		t.Errorf("got %q, want 2024-05", got)
	}
	// 不足 7 位无法取前缀
	if got := ExtractMonth(model.DateTimeTextCell("2024")); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestExtractMonth_FloatSerialRange(t *testing.T) {
	t.Parallel()

	if got := ExtractMonth(model.FloatCell(45000)); got != "2023-03" {
		t.Errorf("got %q, want 2023-03", got)
	}
	// 范围 (0, 100000) 之外不按序列数解释
	if got := ExtractMonth(model.FloatCell(100000)); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := ExtractMonth(model.FloatCell(-1)); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestExtractMonth_UnusableVariants(t *testing.T) {
	t.Parallel()

	for _, cell := range []model.CellValue{
		model.BoolCell(true),
		model.ErrorCell("N/A"),
		model.EmptyCell(),
		model.IntCell(45000), // 整数变体不参与月份提取
	} {
		if got := ExtractMonth(cell); got != "" {
			t.Errorf("ExtractMonth(%v) = %q, want empty", cell.Kind, got)
		}
	}
}

func TestParseOrderDate_TextForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"2025/1/15", "2025-01-15"},
		{"2025-01-15", "2025-01-15"},
		{"2025/11/4", "2025-11-04"},
		{"2025-01-15 10:30:00", "2025-01-15"},
	}
	for _, tc := range cases {
		got, ok := ParseOrderDate(tc.raw)
		if !ok {
			t.Fatalf("ParseOrderDate(%q) failed", tc.raw)
		}
		if got.Format("2006-01-02") != tc.want {
			t.Errorf("ParseOrderDate(%q) = %s, want %s", tc.raw, got.Format("2006-01-02"), tc.want)
		}
	}
}

func TestParseOrderDate_SerialWithCorrection(t *testing.T) {
	t.Parallel()

	// 序列数解析带 -2 修正（1900 系统的 1900-02-29 历史假日）
	got, ok := ParseOrderDate("45002")
	if !ok {
		t.Fatal("ParseOrderDate failed")
	}
	want := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestParseOrderDate_Invalid(t *testing.T) {
	t.Parallel()

	// 2025/2/31 和 2025/4/31 能过逐段范围检查，但不是合法日历日期
	for _, raw := range []string{"", "abc", "2025/1", "0.5", "2025-13-01", "2025/1/40", "2025/2/31", "2025-04-31"} {
		if _, ok := ParseOrderDate(raw); ok {
			t.Errorf("ParseOrderDate(%q) should fail", raw)
		}
	}
}

func TestSerialDateToString(t *testing.T) {
	t.Parallel()

	if got := SerialDateToString(45002); got != "2023/3/15" {
		t.Errorf("got %q, want 2023/3/15", got)
	}
	if got := SerialDateToString(0.5); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
