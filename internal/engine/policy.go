package engine

import (
	"runtime"
	"sync"
	"time"

	"salescope/internal/model"
)

// findMatchingPolicy 按列表顺序找首个满足条件的政策：商品编码精确匹配、
// 下单日期落在 [开始, 结束] 闭区间内、结算单价严格大于活动后单价。
// 首个命中即停，多政策重叠时按列表顺序取先者（产品口径）。
func findMatchingPolicy(policies []model.ActivityPolicy, productCode string, orderDate time.Time, settlementPrice float64) *model.ActivityPolicy {
	for i := range policies {
		p := &policies[i]
		if p.ProductCode != productCode {
			continue
		}
		start, okStart := ParseOrderDate(p.StartDate)
		end, okEnd := ParseOrderDate(p.EndDate)
		if !okStart || !okEnd {
			continue
		}
		if orderDate.Before(start) || orderDate.After(end) {
			continue
		}
		if settlementPrice > p.ActivityPrice {
			return p
		}
	}
	return nil
}

// matchRow 单行匹配：命中时用平台活动覆盖活动政策列，
// 未命中或日期解析失败时保留原值
func matchRow(row *model.PolicySalesRow, policies []model.ActivityPolicy) {
	orderDate, ok := ParseOrderDate(row.OrderDate)
	if !ok {
		return
	}
	if p := findMatchingPolicy(policies, row.ProductCode, orderDate, row.SettlementPrice); p != nil {
		row.Policy = p.PlatformActivity
	}
}

// MatchPolicies 为每条销售明细匹配活动政策。行间无共享状态，
// 按分块并行映射，分块内就地改写。
func MatchPolicies(rows []model.PolicySalesRow, policies []model.ActivityPolicy) []model.PolicySalesRow {
	if len(rows) == 0 {
		return rows
	}

	workers := runtime.NumCPU()
	chunkSize := len(rows) / workers
	if chunkSize < defaultMinChunkSize {
		chunkSize = defaultMinChunkSize
	}

	var wg sync.WaitGroup
	for start := 0; start < len(rows); start += chunkSize {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		wg.Add(1)
		go func(chunk []model.PolicySalesRow) {
			defer wg.Done()
			for i := range chunk {
				matchRow(&chunk[i], policies)
			}
		}(rows[start:end])
	}
	wg.Wait()

	return rows
}
