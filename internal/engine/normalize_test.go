package engine

import (
	"testing"

	"salescope/internal/model"
)

func salesCols(t *testing.T, names ...string) *ColumnMap {
	t.Helper()
	cols, err := ResolveColumns(headerOf(names...))
	if err != nil {
		t.Fatalf("ResolveColumns failed: %v", err)
	}
	return cols
}

func TestNormalizeRow_TotalAmountInvariant(t *testing.T) {
	t.Parallel()

	cols := salesCols(t, "客户编码", "支付金额", "充值抵扣")
	row := []model.CellValue{
		model.TextCell("C001"),
		model.FloatCell(123.45),
		model.TextCell("6.55"),
	}

	parsed := NormalizeRow(row, cols)
	if parsed == nil {
		t.Fatal("row should not be dropped")
	}
	if parsed.PayAmount != 123.45 {
		t.Errorf("PayAmount = %v, want 123.45", parsed.PayAmount)
	}
	if parsed.RechargeDeduction != 6.55 {
		t.Errorf("RechargeDeduction = %v, want 6.55", parsed.RechargeDeduction)
	}
	if parsed.TotalAmount != parsed.PayAmount+parsed.RechargeDeduction {
		t.Errorf("TotalAmount = %v, want %v", parsed.TotalAmount, parsed.PayAmount+parsed.RechargeDeduction)
	}
}

func TestNormalizeRow_DropsEmptyCustomerCode(t *testing.T) {
	t.Parallel()

	cols := salesCols(t, "客户编码", "支付金额", "充值抵扣")

	// 空编码、纯空白编码、短行（编码列越界）都应丢弃
	cases := [][]model.CellValue{
		{model.EmptyCell(), model.FloatCell(1), model.FloatCell(2)},
		{model.TextCell("   "), model.FloatCell(1), model.FloatCell(2)},
		{},
	}
	for i, row := range cases {
		if parsed := NormalizeRow(row, cols); parsed != nil {
			t.Errorf("case %d: row should be dropped, got %+v", i, parsed)
		}
	}
}

func TestNormalizeRow_NumericCoercionDefaults(t *testing.T) {
	t.Parallel()

	cols := salesCols(t, "客户编码", "支付金额", "充值抵扣")
	row := []model.CellValue{
		model.TextCell("C001"),
		model.TextCell("abc"), // 解析失败回退 0.0
		model.BoolCell(true),  // 非数值变体按 0.0
	}

	parsed := NormalizeRow(row, cols)
	if parsed == nil {
		t.Fatal("row should not be dropped")
	}
	if parsed.PayAmount != 0 || parsed.RechargeDeduction != 0 || parsed.TotalAmount != 0 {
		t.Errorf("amounts = %v/%v/%v, want all 0", parsed.PayAmount, parsed.RechargeDeduction, parsed.TotalAmount)
	}
}

func TestNormalizeRow_IntegerCellAmount(t *testing.T) {
	t.Parallel()

	cols := salesCols(t, "客户编码", "支付金额", "充值抵扣")
	row := []model.CellValue{
		model.TextCell("C001"),
		model.IntCell(100),
		model.FloatCell(0.5),
	}

	parsed := NormalizeRow(row, cols)
	if parsed == nil {
		t.Fatal("row should not be dropped")
	}
	if parsed.TotalAmount != 100.5 {
		t.Errorf("TotalAmount = %v, want 100.5", parsed.TotalAmount)
	}
}

func TestNormalizeRow_RegionFromParts(t *testing.T) {
	t.Parallel()

	cols := salesCols(t, "客户编码", "支付金额", "充值抵扣", "省份", "城市", "区县")
	row := []model.CellValue{
		model.TextCell("C001"),
		model.FloatCell(1),
		model.FloatCell(0),
		model.TextCell("湖南省"),
		model.TextCell("长沙市"),
		model.TextCell("岳麓区"),
	}

	parsed := NormalizeRow(row, cols)
	if parsed == nil {
		t.Fatal("row should not be dropped")
	}
	if parsed.Region != "湖南省-长沙市-岳麓区" {
		t.Errorf("Region = %s, want 湖南省-长沙市-岳麓区", parsed.Region)
	}
}

func TestNormalizeRow_RegionSkipsEmptyParts(t *testing.T) {
	t.Parallel()

	cols := salesCols(t, "客户编码", "支付金额", "充值抵扣", "省份", "城市", "区县")
	row := []model.CellValue{
		model.TextCell("C001"),
		model.FloatCell(1),
		model.FloatCell(0),
		model.TextCell("湖南省"),
		model.EmptyCell(),
		model.TextCell("岳麓区"),
	}

	parsed := NormalizeRow(row, cols)
	if parsed.Region != "湖南省-岳麓区" {
		t.Errorf("Region = %s, want 湖南省-岳麓区", parsed.Region)
	}
}

func TestNormalizeRow_RegionFallbackColumn(t *testing.T) {
	t.Parallel()

	// 省/市/区全空时回退到直接映射的地区列
	cols := salesCols(t, "客户编码", "支付金额", "充值抵扣", "省份", "地区")
	row := []model.CellValue{
		model.TextCell("C001"),
		model.FloatCell(1),
		model.FloatCell(0),
		model.EmptyCell(),
		model.TextCell("华中"),
	}

	parsed := NormalizeRow(row, cols)
	if parsed.Region != "华中" {
		t.Errorf("Region = %s, want 华中", parsed.Region)
	}
}

func TestNormalizeRow_MonthFromDateColumn(t *testing.T) {
	t.Parallel()

	cols := salesCols(t, "客户编码", "支付金额", "充值抵扣", "下单日期")
	row := []model.CellValue{
		model.TextCell("C001"),
		model.FloatCell(1),
		model.FloatCell(0),
		model.TextCell("2024-01-15"),
	}

	parsed := NormalizeRow(row, cols)
	if parsed.Month != "2024-01" {
		t.Errorf("Month = %s, want 2024-01", parsed.Month)
	}
}

func TestCoerceString_Variants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cell model.CellValue
		want string
	}{
		{model.IntCell(42), "42"},
		{model.FloatCell(3.5), "3.5"},
		{model.TextCell("hello"), "hello"},
		{model.BoolCell(true), "true"},
		{model.BoolCell(false), "false"},
		{model.DateTimeCell(45000), "45000"},
		{model.DateTimeTextCell("2024-01-01T00:00:00"), "2024-01-01T00:00:00"},
		{model.DurationTextCell("PT1H"), "PT1H"},
		{model.ErrorCell("DIV/0"), "#ERROR(DIV/0)"},
		{model.EmptyCell(), ""},
	}
	for _, tc := range cases {
		if got := tc.cell.String(); got != tc.want {
			t.Errorf("String(%v) = %q, want %q", tc.cell.Kind, got, tc.want)
		}
	}
}
