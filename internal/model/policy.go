package model

// ActivityPolicy 活动政策参照数据，按政策匹配运行一次性加载，只读
type ActivityPolicy struct {
	ProductCode      string  `json:"product_code"`
	PlatformActivity string  `json:"platform_activity"` // 平台活动标签
	StartDate        string  `json:"start_date"`        // 开始时间，闭区间
	EndDate          string  `json:"end_date"`          // 结束时间，闭区间
	ActivityPrice    float64 `json:"activity_price"`    // 活动后单价
}

// PolicySalesRow 政策分析用的销售明细行
type PolicySalesRow struct {
	OrderDate            string  `json:"order_date"` // 下单日期（文本或序列数转换结果）
	SalesOrderNo         string  `json:"sales_order_no"`
	CustomerCode         string  `json:"customer_code"`
	CustomerName         string  `json:"customer_name"`
	ProductCode          string  `json:"product_code"`
	GenericName          string  `json:"generic_name"`
	SalesPrice           float64 `json:"sales_price"`
	SettlementPrice      float64 `json:"settlement_price"`
	ListedPrice          float64 `json:"listed_price"`
	IsBelowListed        string  `json:"is_below_listed"`
	IsInPolicy           string  `json:"is_in_policy"`
	Policy               string  `json:"policy"` // 活动政策标签，匹配命中时被平台活动覆盖
	BasePriceAfterPolicy float64 `json:"base_price_after_policy"`
	GrossMarginRate      float64 `json:"gross_margin_rate"`
	SalesQuantity        float64 `json:"sales_quantity"`
	PayAmount            float64 `json:"pay_amount"`
}

// PolicyMatchResult 政策匹配结果
type PolicyMatchResult struct {
	FilePath   string           `json:"file_path"`
	Rows       []PolicySalesRow `json:"rows"`
	TotalRows  int              `json:"total_rows"`
	LoadTimeMs int64            `json:"load_time_ms"`
}
