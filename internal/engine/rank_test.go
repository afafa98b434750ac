package engine

import (
	"fmt"
	"math"
	"testing"

	"salescope/internal/model"
)

func makeAggregates(n int) map[string]*model.CustomerAggregate {
	aggs := make(map[string]*model.CustomerAggregate, n)
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("C%03d", i)
		aggs[code] = &model.CustomerAggregate{
			CustomerCode: code,
			CustomerName: "客户" + code,
			TotalAmount:  float64((i * 37) % 101),
			OrderCount:   i + 1,
		}
	}
	return aggs
}

func TestRankTopCustomers_Top20(t *testing.T) {
	t.Parallel()

	result := RankTopCustomers(makeAggregates(50), 500)

	if len(result.Top20) != 20 {
		t.Fatalf("top20 length = %d, want 20", len(result.Top20))
	}
	if result.TotalCustomers != 50 {
		t.Errorf("TotalCustomers = %d, want 50", result.TotalCustomers)
	}
	if result.TotalRows != 500 {
		t.Errorf("TotalRows = %d, want 500", result.TotalRows)
	}

	// 降序排列
	for i := 1; i < len(result.Top20); i++ {
		if result.Top20[i].TotalAmount > result.Top20[i-1].TotalAmount {
			t.Errorf("top20 not descending at %d: %v > %v",
				i, result.Top20[i].TotalAmount, result.Top20[i-1].TotalAmount)
		}
	}

	if result.Top20Amount > result.TotalAmount+1e-9 {
		t.Errorf("Top20Amount %v exceeds TotalAmount %v", result.Top20Amount, result.TotalAmount)
	}
}

func TestRankTopCustomers_FewerThan20(t *testing.T) {
	t.Parallel()

	result := RankTopCustomers(makeAggregates(5), 5)

	if len(result.Top20) != 5 {
		t.Fatalf("top20 length = %d, want 5", len(result.Top20))
	}
	// 客户数不足 20 时榜单即全量，两个总额相等
	if math.Abs(result.Top20Amount-result.TotalAmount) > 1e-9 {
		t.Errorf("Top20Amount = %v, want %v", result.Top20Amount, result.TotalAmount)
	}
}

func TestRankTopCustomers_Empty(t *testing.T) {
	t.Parallel()

	result := RankTopCustomers(map[string]*model.CustomerAggregate{}, 0)
	if len(result.Top20) != 0 {
		t.Errorf("top20 length = %d, want 0", len(result.Top20))
	}
	if result.TotalAmount != 0 || result.Top20Amount != 0 {
		t.Errorf("amounts = %v/%v, want 0/0", result.TotalAmount, result.Top20Amount)
	}
}
