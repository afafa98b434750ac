package engine

import (
	"strings"

	"salescope/internal/model"
	"salescope/internal/store"
)

// MergeSources 按给定顺序合并多个已加载的数据源：行序列直接拼接
// （源顺序优先，源内保持原行序），聚合 map 用与分块归并相同的累加规则归并。
// 不做跨源去重，同一数据源出现两次则所有金额翻倍。
func MergeSources(st *store.Store, sourceIDs []string) (*store.Dataset, error) {
	if len(sourceIDs) == 0 {
		return nil, ErrEmptySourceList
	}

	datasets := make([]*store.Dataset, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		ds, ok := st.Get(id)
		if !ok {
			return nil, &SourceNotLoadedError{ID: id}
		}
		datasets = append(datasets, ds)
	}

	totalRows := 0
	for _, ds := range datasets {
		totalRows += len(ds.Rows)
	}

	mergedRows := make([]model.NormalizedRow, 0, totalRows)
	mergedAggregates := make(map[string]*model.CustomerAggregate)
	paths := make([]string, 0, len(datasets))

	for _, ds := range datasets {
		mergedRows = append(mergedRows, ds.Rows...)
		paths = append(paths, ds.FilePath)

		// 归并前复制，合并绝不改动各源已物化的聚合
		copied := make(map[string]*model.CustomerAggregate, len(ds.Aggregates))
		for code, agg := range ds.Aggregates {
			clone := *agg
			copied[code] = &clone
		}
		mergeAggregate(mergedAggregates, copied)
	}

	// 拼接路径仅用于展示，不作缓存键
	return &store.Dataset{
		FilePath:   strings.Join(paths, "; "),
		Rows:       mergedRows,
		Aggregates: mergedAggregates,
	}, nil
}
