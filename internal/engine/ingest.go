package engine

import (
	"fmt"
	"sort"
	"time"

	"salescope/internal/model"
)

// progressInterval 每处理多少行上报一次进度
const progressInterval = 10000

// Ingest 导入一张工作表：表头解析列映射，逐行规范化并收集筛选选项。
// grid 的第一行是表头，之后是数据行。取消在粗粒度检查点观测。
func Ingest(grid [][]model.CellValue, filePath string, cancel *CancelToken, progress chan<- ProgressEvent) (*model.LoadResult, error) {
	start := time.Now()

	if cancel.Cancelled() {
		return nil, ErrCancelled
	}

	if len(grid) == 0 {
		return nil, ErrEmptySheet
	}

	totalRows := len(grid) - 1
	emitProgress(progress, ProgressEvent{
		Step:    "1/3",
		Message: "数据读取完成",
		Percent: 30,
		Detail:  fmt.Sprintf("共 %d 行数据", totalRows),
	})

	cols, err := ResolveColumns(grid[0])
	if err != nil {
		return nil, err
	}

	emitProgress(progress, ProgressEvent{
		Step:    "2/3",
		Message: "正在解析数据...",
		Percent: 40,
		Detail:  fmt.Sprintf("共 %d 行数据", totalRows),
	})

	rows := make([]model.NormalizedRow, 0, totalRows)
	customers := make(map[string]string)
	provinces := make(map[string]struct{})
	cities := make(map[string]struct{})
	districts := make(map[string]struct{})
	regions := make(map[string]struct{})

	for i, raw := range grid[1:] {
		parsed := NormalizeRow(raw, cols)
		if parsed != nil {
			customers[parsed.CustomerCode] = parsed.CustomerName
			if parsed.Province != "" {
				provinces[parsed.Province] = struct{}{}
			}
			if parsed.City != "" {
				cities[parsed.City] = struct{}{}
			}
			if parsed.District != "" {
				districts[parsed.District] = struct{}{}
			}
			if parsed.Region != "" {
				regions[parsed.Region] = struct{}{}
			}
			rows = append(rows, *parsed)
		}

		if i%progressInterval == 0 && totalRows > 0 {
			percent := 40 + int(float64(i)/float64(totalRows)*50)
			emitProgress(progress, ProgressEvent{
				Step:    "2/3",
				Message: "正在解析数据...",
				Percent: percent,
				Detail:  fmt.Sprintf("已处理 %d / %d 行", i, totalRows),
			})
		}
	}

	if cancel.Cancelled() {
		return nil, ErrCancelled
	}

	emitProgress(progress, ProgressEvent{
		Step:    "3/3",
		Message: "正在整理数据...",
		Percent: 95,
		Detail:  "生成选项列表...",
	})

	availableCustomers := make([]model.CustomerOption, 0, len(customers))
	for code, name := range customers {
		availableCustomers = append(availableCustomers, model.CustomerOption{Code: code, Name: name})
	}
	sort.Slice(availableCustomers, func(i, j int) bool {
		return availableCustomers[i].Code < availableCustomers[j].Code
	})

	loadTimeMs := time.Since(start).Milliseconds()
	emitProgress(progress, ProgressEvent{
		Step:    "完成",
		Message: "数据加载完成！",
		Percent: 100,
		Detail:  fmt.Sprintf("耗时 %dms，缓存 %d 行数据", loadTimeMs, len(rows)),
	})

	return &model.LoadResult{
		FilePath:           filePath,
		Rows:               rows,
		AvailableCustomers: availableCustomers,
		AvailableProvinces: sortedKeys(provinces),
		AvailableCities:    sortedKeys(cities),
		AvailableDistricts: sortedKeys(districts),
		AvailableRegions:   sortedKeys(regions),
		TotalRows:          totalRows,
		LoadTimeMs:         loadTimeMs,
	}, nil
}

// CollectOptions 从缓存行重建筛选选项，切换数据源时复用
func CollectOptions(rows []model.NormalizedRow) (customers []model.CustomerOption, provinces, cities, districts, regions []string) {
	customerMap := make(map[string]string)
	provinceSet := make(map[string]struct{})
	citySet := make(map[string]struct{})
	districtSet := make(map[string]struct{})
	regionSet := make(map[string]struct{})

	for i := range rows {
		row := &rows[i]
		customerMap[row.CustomerCode] = row.CustomerName
		if row.Province != "" {
			provinceSet[row.Province] = struct{}{}
		}
		if row.City != "" {
			citySet[row.City] = struct{}{}
		}
		if row.District != "" {
			districtSet[row.District] = struct{}{}
		}
		if row.Region != "" {
			regionSet[row.Region] = struct{}{}
		}
	}

	customers = make([]model.CustomerOption, 0, len(customerMap))
	for code, name := range customerMap {
		customers = append(customers, model.CustomerOption{Code: code, Name: name})
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Code < customers[j].Code })

	return customers, sortedKeys(provinceSet), sortedKeys(citySet), sortedKeys(districtSet), sortedKeys(regionSet)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
