package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"salescope/internal/engine"
	"salescope/internal/model"
)

// 政策工作簿的固定工作表名
const (
	analysisSheetName = "分析"
	policySheetSuffix = "活动政策"
)

// platformActivityColumn 平台活动列在政策表头中的固定位置（从 0 起）
const platformActivityColumn = 17

// salesRequiredColumns 分析表的必需列
var salesRequiredColumns = []string{
	"下单日期", "销售单号", "客户编码", "客户名称", "商品编码", "通用名",
	"销售单价/积分", "结算单价", "挂网价", "是否低于挂网",
	"是否活动政策内", "活动政策", "活动后底价", "毛利率(%)",
	"销售数量", "支付金额",
}

// policyRequiredColumns 政策表按名字定位的必需列
var policyRequiredColumns = []string{"商品编码", "开始时间", "结束时间", "活动后单价"}

// ReadPolicyWorkbook 读取政策工作簿：分析表产出销售明细行，
// 活动政策表产出政策参照列表
func ReadPolicyWorkbook(filePath string) ([]model.PolicySalesRow, []model.ActivityPolicy, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("无法打开Excel文件: %w", err)
	}
	defer f.Close()

	analysisSheet := ""
	policySheet := ""
	for _, name := range f.GetSheetList() {
		trimmed := strings.TrimSpace(name)
		if trimmed == analysisSheetName && analysisSheet == "" {
			analysisSheet = name
		}
		if strings.HasSuffix(trimmed, policySheetSuffix) && policySheet == "" {
			policySheet = name
		}
	}
	if analysisSheet == "" {
		return nil, nil, fmt.Errorf("Excel文件中未找到名为'%s'的工作表", analysisSheetName)
	}
	if policySheet == "" {
		return nil, nil, fmt.Errorf("Excel文件中未找到活动政策工作表")
	}

	policies, err := readPolicySheet(f, policySheet)
	if err != nil {
		return nil, nil, err
	}

	salesRows, err := readAnalysisSheet(f, analysisSheet)
	if err != nil {
		return nil, nil, err
	}

	return salesRows, policies, nil
}

// readPolicySheet 读取活动政策表
func readPolicySheet(f *excelize.File, sheetName string) ([]model.ActivityPolicy, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("读取'%s'工作表数据失败: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("'%s'工作表为空", sheetName)
	}

	header := headerIndex(rows[0])
	for _, col := range policyRequiredColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("'%s'工作表缺少必需列: %s", sheetName, col)
		}
	}

	policies := make([]model.ActivityPolicy, 0, len(rows)-1)
	for _, row := range rows[1:] {
		policies = append(policies, model.ActivityPolicy{
			ProductCode:      stringField(row, header, "商品编码"),
			PlatformActivity: stringAt(row, platformActivityColumn),
			StartDate:        dateField(row, header, "开始时间"),
			EndDate:          dateField(row, header, "结束时间"),
			ActivityPrice:    floatField(row, header, "活动后单价"),
		})
	}
	return policies, nil
}

// readAnalysisSheet 读取分析表为销售明细行
func readAnalysisSheet(f *excelize.File, sheetName string) ([]model.PolicySalesRow, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("读取'%s'工作表数据失败: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("'%s'工作表为空", sheetName)
	}

	header := headerIndex(rows[0])
	for _, col := range salesRequiredColumns {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("缺少必需列: %s", col)
		}
	}

	salesRows := make([]model.PolicySalesRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		salesRows = append(salesRows, model.PolicySalesRow{
			OrderDate:            dateField(row, header, "下单日期"),
			SalesOrderNo:         stringField(row, header, "销售单号"),
			CustomerCode:         stringField(row, header, "客户编码"),
			CustomerName:         stringField(row, header, "客户名称"),
			ProductCode:          stringField(row, header, "商品编码"),
			GenericName:          stringField(row, header, "通用名"),
			SalesPrice:           floatField(row, header, "销售单价/积分"),
			SettlementPrice:      floatField(row, header, "结算单价"),
			ListedPrice:          floatField(row, header, "挂网价"),
			IsBelowListed:        stringField(row, header, "是否低于挂网"),
			IsInPolicy:           stringField(row, header, "是否活动政策内"),
			Policy:               stringField(row, header, "活动政策"),
			BasePriceAfterPolicy: floatField(row, header, "活动后底价"),
			GrossMarginRate:      floatField(row, header, "毛利率(%)"),
			SalesQuantity:        floatField(row, header, "销售数量"),
			PayAmount:            floatField(row, header, "支付金额"),
		})
	}
	return salesRows, nil
}

// headerIndex 表头列名到索引的映射，首次出现优先
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}

func stringField(row []string, header map[string]int, col string) string {
	idx, ok := header[col]
	if !ok {
		return ""
	}
	return stringAt(row, idx)
}

func stringAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// dateField 日期列：序列数渲染为 "Y/M/D" 文本，其余原样返回
func dateField(row []string, header map[string]int, col string) string {
	raw := stringField(row, header, col)
	if raw == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return engine.SerialDateToString(serial)
	}
	return raw
}

func floatField(row []string, header map[string]int, col string) float64 {
	raw := stringField(row, header, col)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
