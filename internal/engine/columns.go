package engine

import (
	"strings"

	"salescope/internal/model"
)

// 逻辑字段名
const (
	FieldCustomerCode      = "customer_code"
	FieldCustomerName      = "customer_name"
	FieldPayAmount         = "pay_amount"
	FieldRechargeDeduction = "recharge_deduction"
	FieldProvince          = "province"
	FieldCity              = "city"
	FieldDistrict          = "district"
	FieldRegion            = "region"
	FieldDate              = "date"
)

// columnSynonyms 列名同义词表，精确匹配（去首尾空白后区分大小写）。
// 匹配规则是纯数据，独立可测。
var columnSynonyms = map[string]string{
	"客户编码": FieldCustomerCode,

	"客户名称": FieldCustomerName,
	"客户":   FieldCustomerName,

	"支付金额": FieldPayAmount,
	"充值抵扣": FieldRechargeDeduction,

	"省":  FieldProvince,
	"省份": FieldProvince,

	"市":  FieldCity,
	"城市": FieldCity,

	"区":  FieldDistrict,
	"区县": FieldDistrict,
	"县":  FieldDistrict,

	"地区": FieldRegion,
	"区域": FieldRegion,

	"日期":   FieldDate,
	"订单日期": FieldDate,
	"下单日期": FieldDate,
	"创建时间": FieldDate,
	"下单时间": FieldDate,
	"支付时间": FieldDate,
	"付款时间": FieldDate,
	"交易时间": FieldDate,
	"时间":   FieldDate,
	"成交时间": FieldDate,
	"签约时间": FieldDate,
	"出库时间": FieldDate,
	"出库日期": FieldDate,
	"发货时间": FieldDate,
	"发货日期": FieldDate,
	"完成时间": FieldDate,
	"完成日期": FieldDate,
	"结算时间": FieldDate,
	"结算日期": FieldDate,
}

// requiredFields 必需字段，任何一个解析不到则导入失败
var requiredFields = []string{FieldCustomerCode, FieldPayAmount, FieldRechargeDeduction}

// ColumnMap 逻辑字段到列索引的映射，每次导入构建一次
type ColumnMap struct {
	indices map[string]int
}

// Index 返回字段的列索引，未解析到时 ok 为 false
func (m *ColumnMap) Index(field string) (int, bool) {
	idx, ok := m.indices[field]
	return idx, ok
}

// ResolveColumns 解析表头行，同一同义词重复出现时首次出现优先。
// 必需字段缺失返回 MissingColumnError，在处理任何数据行之前失败。
func ResolveColumns(header []model.CellValue) (*ColumnMap, error) {
	indices := make(map[string]int)

	for idx, cell := range header {
		name := strings.TrimSpace(cell.String())
		if name == "" {
			continue
		}
		field, ok := columnSynonyms[name]
		if !ok {
			continue
		}
		if _, exists := indices[field]; exists {
			continue
		}
		indices[field] = idx
	}

	for _, field := range requiredFields {
		if _, ok := indices[field]; !ok {
			return nil, &MissingColumnError{Field: fieldDisplayName(field)}
		}
	}

	return &ColumnMap{indices: indices}, nil
}

// fieldDisplayName 必需字段的中文列名，错误信息按表头口径报告
func fieldDisplayName(field string) string {
	switch field {
	case FieldCustomerCode:
		return "客户编码"
	case FieldPayAmount:
		return "支付金额"
	case FieldRechargeDeduction:
		return "充值抵扣"
	}
	return field
}
