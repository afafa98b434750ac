package engine

import (
	"sort"
	"time"

	"salescope/internal/model"
)

// 分析维度
const (
	DimCustomer = "customer"
	DimProvince = "province"
	DimCity     = "city"
	DimDistrict = "district"
	DimRegion   = "region"
)

// unknownMonth 无法提取月份的行归入的桶
const unknownMonth = "未知月份"

// matchDimension 行是否命中维度目标，customer 维度按客户编码精确匹配
func matchDimension(row *model.NormalizedRow, dimension, target string) bool {
	switch dimension {
	case DimCustomer:
		return row.CustomerCode == target
	case DimProvince:
		return row.Province == target
	case DimCity:
		return row.City == target
	case DimDistrict:
		return row.District == target
	case DimRegion:
		return row.Region == target
	default:
		return false
	}
}

// AnalyzeMonthly 按选定维度过滤后做月度汇总，第二遍计算环比增长率。
// 月份串固定 7 位 "YYYY-MM"，字典序即时间序。
func AnalyzeMonthly(rows []model.NormalizedRow, dimension, target string) (*model.MonthlyAnalysisResult, error) {
	start := time.Now()

	if target == "" {
		return nil, ErrNoTarget
	}

	monthly := make(map[string]*model.MonthlyBucket)
	targetName := ""

	for i := range rows {
		row := &rows[i]
		if !matchDimension(row, dimension, target) {
			continue
		}
		if dimension == DimCustomer && targetName == "" && row.CustomerName != "" {
			targetName = row.CustomerName
		}

		month := row.Month
		if month == "" {
			month = unknownMonth
		}

		bucket, ok := monthly[month]
		if !ok {
			monthly[month] = &model.MonthlyBucket{
				Month:             month,
				TotalAmount:       row.TotalAmount,
				PayAmount:         row.PayAmount,
				RechargeDeduction: row.RechargeDeduction,
				OrderCount:        1,
			}
			continue
		}
		bucket.TotalAmount += row.TotalAmount
		bucket.PayAmount += row.PayAmount
		bucket.RechargeDeduction += row.RechargeDeduction
		bucket.OrderCount++
	}

	monthlyData := make([]model.MonthlyBucket, 0, len(monthly))
	for _, bucket := range monthly {
		monthlyData = append(monthlyData, *bucket)
	}
	sort.Slice(monthlyData, func(i, j int) bool {
		return monthlyData[i].Month < monthlyData[j].Month
	})

	// 环比增长率：首桶恒为 0；前月为 0 且当月大于 0 记 100
	for i := 1; i < len(monthlyData); i++ {
		prev := monthlyData[i-1].TotalAmount
		curr := monthlyData[i].TotalAmount
		if prev > 0 {
			monthlyData[i].MomGrowthRate = (curr - prev) / prev * 100
		} else if curr > 0 {
			monthlyData[i].MomGrowthRate = 100
		}
	}

	totalAmount := 0.0
	totalOrders := 0
	for i := range monthlyData {
		totalAmount += monthlyData[i].TotalAmount
		totalOrders += monthlyData[i].OrderCount
	}

	if targetName == "" {
		targetName = target
	}

	return &model.MonthlyAnalysisResult{
		AnalysisType:  dimension,
		Target:        target,
		TargetName:    targetName,
		MonthlyData:   monthlyData,
		TotalAmount:   totalAmount,
		TotalOrders:   totalOrders,
		ProcessTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

// FilterRows 返回命中维度目标的明细行，供调用方导出订单明细
func FilterRows(rows []model.NormalizedRow, dimension, target string) []model.NormalizedRow {
	var details []model.NormalizedRow
	for i := range rows {
		if matchDimension(&rows[i], dimension, target) {
			details = append(details, rows[i])
		}
	}
	return details
}
