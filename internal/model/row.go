package model

// NormalizedRow 一条规范化后的销售记录，导入时创建，创建后不可变
type NormalizedRow struct {
	CustomerCode      string  `json:"customer_code"`
	CustomerName      string  `json:"customer_name"`
	PayAmount         float64 `json:"pay_amount"`
	RechargeDeduction float64 `json:"recharge_deduction"`
	TotalAmount       float64 `json:"total_amount"` // 恒等于 PayAmount + RechargeDeduction
	Province          string  `json:"province,omitempty"`
	City              string  `json:"city,omitempty"`
	District          string  `json:"district,omitempty"`
	Region            string  `json:"region,omitempty"`
	Month             string  `json:"month,omitempty"` // 格式 "2024-01"，解析失败为空
}

// CustomerAggregate 按客户编码汇总的聚合结果
type CustomerAggregate struct {
	CustomerCode      string  `json:"customer_code"`
	CustomerName      string  `json:"customer_name"` // 首个非空名称，后续空值不覆盖
	PayAmount         float64 `json:"pay_amount"`
	RechargeDeduction float64 `json:"recharge_deduction"`
	TotalAmount       float64 `json:"total_amount"`
	OrderCount        int     `json:"order_count"`
}

// MonthlyBucket 单个月份的汇总桶
type MonthlyBucket struct {
	Month             string  `json:"month"`
	TotalAmount       float64 `json:"total_amount"`
	PayAmount         float64 `json:"pay_amount"`
	RechargeDeduction float64 `json:"recharge_deduction"`
	OrderCount        int     `json:"order_count"`
	MomGrowthRate     float64 `json:"mom_growth_rate"` // 环比增长率(%)，排序后的第二遍计算
}

// CustomerOption 客户筛选选项（编码+名称）
type CustomerOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// LoadResult 数据源导入结果
type LoadResult struct {
	FilePath           string           `json:"file_path"`
	Rows               []NormalizedRow  `json:"-"`
	AvailableCustomers []CustomerOption `json:"available_customers"`
	AvailableProvinces []string         `json:"available_provinces"`
	AvailableCities    []string         `json:"available_cities"`
	AvailableDistricts []string         `json:"available_districts"`
	AvailableRegions   []string         `json:"available_regions"`
	TotalRows          int              `json:"total_rows"` // 原始数据行数，含被丢弃的行
	LoadTimeMs         int64            `json:"load_time_ms"`
}

// AnalysisResult 前20大客户分析结果
type AnalysisResult struct {
	Top20          []CustomerAggregate `json:"top20"`
	TotalCustomers int                 `json:"total_customers"`
	TotalAmount    float64             `json:"total_amount"`
	Top20Amount    float64             `json:"top20_amount"`
	TotalRows      int                 `json:"total_rows"`
	ProcessTimeMs  int64               `json:"process_time_ms"`
}

// MonthlyAnalysisResult 月度趋势分析结果
type MonthlyAnalysisResult struct {
	AnalysisType  string          `json:"analysis_type"`
	Target        string          `json:"target"`
	TargetName    string          `json:"target_name"`
	MonthlyData   []MonthlyBucket `json:"monthly_data"`
	TotalAmount   float64         `json:"total_amount"`
	TotalOrders   int             `json:"total_orders"`
	ProcessTimeMs int64           `json:"process_time_ms"`
}
