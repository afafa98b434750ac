package engine

import (
	"strconv"
	"strings"

	"salescope/internal/model"
)

// cellText 取行内指定字段的显示文本并去首尾空白，字段未解析或越界返回空串
func cellText(row []model.CellValue, cols *ColumnMap, field string) string {
	idx, ok := cols.Index(field)
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx].String())
}

// cellNumber 取行内指定字段的数值，解析失败回退为 0.0
func cellNumber(row []model.CellValue, cols *ColumnMap, field string) float64 {
	idx, ok := cols.Index(field)
	if !ok || idx >= len(row) {
		return 0
	}
	return coerceNumber(row[idx])
}

// coerceNumber 数值强转：整数/浮点直取，文本按浮点解析，其余变体视作 0.0
func coerceNumber(cell model.CellValue) float64 {
	switch cell.Kind {
	case model.CellFloat:
		return cell.Float
	case model.CellInteger:
		return float64(cell.Int)
	case model.CellText:
		f, err := strconv.ParseFloat(strings.TrimSpace(cell.Text), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// NormalizeRow 将一条原始数据行规范化为销售记录。
// 客户编码缺失或为空时丢弃该行（返回 nil，不报错）。
func NormalizeRow(row []model.CellValue, cols *ColumnMap) *model.NormalizedRow {
	customerCode := cellText(row, cols, FieldCustomerCode)
	if customerCode == "" {
		return nil
	}

	payAmount := cellNumber(row, cols, FieldPayAmount)
	rechargeDeduction := cellNumber(row, cols, FieldRechargeDeduction)

	province := cellText(row, cols, FieldProvince)
	city := cellText(row, cols, FieldCity)
	district := cellText(row, cols, FieldDistrict)

	// 省/市/区任一非空时拼接地区，否则回退到直接映射的地区列
	region := ""
	if province != "" || city != "" || district != "" {
		var parts []string
		for _, p := range []string{province, city, district} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		region = strings.Join(parts, "-")
	} else {
		region = cellText(row, cols, FieldRegion)
	}

	month := ""
	if idx, ok := cols.Index(FieldDate); ok && idx < len(row) {
		month = ExtractMonth(row[idx])
	}

	return &model.NormalizedRow{
		CustomerCode:      customerCode,
		CustomerName:      cellText(row, cols, FieldCustomerName),
		PayAmount:         payAmount,
		RechargeDeduction: rechargeDeduction,
		TotalAmount:       payAmount + rechargeDeduction,
		Province:          province,
		City:              city,
		District:          district,
		Region:            region,
		Month:             month,
	}
}
