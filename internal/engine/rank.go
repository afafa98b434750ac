package engine

import (
	"sort"
	"time"

	"salescope/internal/model"
)

// topK 排行榜固定取前 20 名
const topK = 20

// RankTopCustomers 按累计金额降序取前20大客户。
// 稳定排序，金额相等时保持相对顺序（相等序内部不作进一步约定）。
func RankTopCustomers(aggregates map[string]*model.CustomerAggregate, totalRows int) *model.AnalysisResult {
	start := time.Now()

	customers := make([]model.CustomerAggregate, 0, len(aggregates))
	for _, agg := range aggregates {
		customers = append(customers, *agg)
	}

	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].TotalAmount > customers[j].TotalAmount
	})

	totalAmount := 0.0
	for i := range customers {
		totalAmount += customers[i].TotalAmount
	}

	n := topK
	if len(customers) < n {
		n = len(customers)
	}
	top20 := customers[:n]

	top20Amount := 0.0
	for i := range top20 {
		top20Amount += top20[i].TotalAmount
	}

	return &model.AnalysisResult{
		Top20:          top20,
		TotalCustomers: len(customers),
		TotalAmount:    totalAmount,
		Top20Amount:    top20Amount,
		TotalRows:      totalRows,
		ProcessTimeMs:  time.Since(start).Milliseconds(),
	}
}
