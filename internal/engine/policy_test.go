package engine

import (
	"testing"

	"salescope/internal/model"
)

func policyFixture() []model.ActivityPolicy {
	return []model.ActivityPolicy{
		{
			ProductCode:      "P001",
			PlatformActivity: "一月大促",
			StartDate:        "2025-01-01",
			EndDate:          "2025-01-31",
			ActivityPrice:    10.0,
		},
	}
}

func TestMatchPolicies_PriceGate(t *testing.T) {
	t.Parallel()

	rows := []model.PolicySalesRow{
		{ProductCode: "P001", OrderDate: "2025-01-15", SettlementPrice: 12.0, Policy: "原值"},
		{ProductCode: "P001", OrderDate: "2025-01-15", SettlementPrice: 8.0, Policy: "原值"},
		// 结算单价等于活动后单价不算命中
		{ProductCode: "P001", OrderDate: "2025-01-15", SettlementPrice: 10.0, Policy: "原值"},
	}
	MatchPolicies(rows, policyFixture())

	if rows[0].Policy != "一月大促" {
		t.Errorf("row 0 policy = %s, want 一月大促", rows[0].Policy)
	}
	if rows[1].Policy != "原值" {
		t.Errorf("row 1 policy = %s, want 原值", rows[1].Policy)
	}
	if rows[2].Policy != "原值" {
		t.Errorf("row 2 policy = %s, want 原值", rows[2].Policy)
	}
}

func TestMatchPolicies_DateRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		orderDate string
		want      string
	}{
		{"2025-01-01", "一月大促"},  // 区间起点含
		{"2025-01-31", "一月大促"},  // 区间终点含
		{"2024-12-31", ""},      // 起点之前
		{"2025-02-01", ""},      // 终点之后
		{"2025/1/15", "一月大促"},   // 斜杠分隔
		{"45673", "一月大促"},       // 序列号 45673-2 → 2025-01-14
		{"not-a-date", ""},      // 解析失败保持原值
	}
	for _, tc := range cases {
		rows := []model.PolicySalesRow{
			{ProductCode: "P001", OrderDate: tc.orderDate, SettlementPrice: 12.0},
		}
		MatchPolicies(rows, policyFixture())
		if rows[0].Policy != tc.want {
			t.Errorf("order date %q: policy = %q, want %q", tc.orderDate, rows[0].Policy, tc.want)
		}
	}
}

func TestMatchPolicies_ProductCodeExact(t *testing.T) {
	t.Parallel()

	rows := []model.PolicySalesRow{
		{ProductCode: "P002", OrderDate: "2025-01-15", SettlementPrice: 12.0},
	}
	MatchPolicies(rows, policyFixture())
	if rows[0].Policy != "" {
		t.Errorf("policy = %s, want empty", rows[0].Policy)
	}
}

// TestMatchPolicies_FirstMatchWins 多政策重叠时取列表中首个命中的政策
func TestMatchPolicies_FirstMatchWins(t *testing.T) {
	t.Parallel()

	policies := []model.ActivityPolicy{
		{ProductCode: "P001", PlatformActivity: "活动A", StartDate: "2025-01-01", EndDate: "2025-01-31", ActivityPrice: 10},
		{ProductCode: "P001", PlatformActivity: "活动B", StartDate: "2025-01-01", EndDate: "2025-01-31", ActivityPrice: 5},
	}
	rows := []model.PolicySalesRow{
		{ProductCode: "P001", OrderDate: "2025-01-15", SettlementPrice: 12.0},
	}
	MatchPolicies(rows, policies)
	if rows[0].Policy != "活动A" {
		t.Errorf("policy = %s, want 活动A", rows[0].Policy)
	}

	// 首个政策价格不满足时落到后续政策
	rows[0].SettlementPrice = 8.0
	rows[0].Policy = ""
	MatchPolicies(rows, policies)
	if rows[0].Policy != "活动B" {
		t.Errorf("policy = %s, want 活动B", rows[0].Policy)
	}
}

func TestMatchPolicies_SerialPolicyDates(t *testing.T) {
	t.Parallel()

	// 政策起止时间本身也可能是序列号串
	policies := []model.ActivityPolicy{
		{ProductCode: "P001", PlatformActivity: "序列号活动", StartDate: "45658", EndDate: "45688", ActivityPrice: 10},
	}
	rows := []model.PolicySalesRow{
		{ProductCode: "P001", OrderDate: "2025-01-15", SettlementPrice: 12.0},
	}
	MatchPolicies(rows, policies)
	if rows[0].Policy != "序列号活动" {
		t.Errorf("policy = %s, want 序列号活动", rows[0].Policy)
	}
}

func TestMatchPolicies_Empty(t *testing.T) {
	t.Parallel()

	if got := MatchPolicies(nil, policyFixture()); len(got) != 0 {
		t.Errorf("rows = %d, want 0", len(got))
	}

	rows := []model.PolicySalesRow{
		{ProductCode: "P001", OrderDate: "2025-01-15", SettlementPrice: 12.0, Policy: "原值"},
	}
	MatchPolicies(rows, nil)
	if rows[0].Policy != "原值" {
		t.Errorf("policy = %s, want 原值", rows[0].Policy)
	}
}
