package engine

import (
	"runtime"
	"sync"

	"salescope/internal/model"
)

// defaultMinChunkSize 单个分块的最小行数，避免小数据集过度扇出
const defaultMinChunkSize = 1000

// AggregateOptions 聚合参数
type AggregateOptions struct {
	Workers      int // 并行度，<=0 取 NumCPU
	MinChunkSize int // 最小分块行数，<=0 取默认值
}

// accumulateRow 把一行累入分块局部聚合，同一累加规则也用于归并
func accumulateRow(m map[string]*model.CustomerAggregate, row *model.NormalizedRow) {
	agg, ok := m[row.CustomerCode]
	if !ok {
		m[row.CustomerCode] = &model.CustomerAggregate{
			CustomerCode:      row.CustomerCode,
			CustomerName:      row.CustomerName,
			PayAmount:         row.PayAmount,
			RechargeDeduction: row.RechargeDeduction,
			TotalAmount:       row.TotalAmount,
			OrderCount:        1,
		}
		return
	}
	agg.PayAmount += row.PayAmount
	agg.RechargeDeduction += row.RechargeDeduction
	agg.TotalAmount += row.TotalAmount
	agg.OrderCount++
	if agg.CustomerName == "" && row.CustomerName != "" {
		agg.CustomerName = row.CustomerName
	}
}

// mergeAggregate 将 partial 归并进 existing，金额与单数相加，名称保留首个非空值
func mergeAggregate(existing map[string]*model.CustomerAggregate, partial map[string]*model.CustomerAggregate) {
	for code, agg := range partial {
		cur, ok := existing[code]
		if !ok {
			existing[code] = agg
			continue
		}
		cur.PayAmount += agg.PayAmount
		cur.RechargeDeduction += agg.RechargeDeduction
		cur.TotalAmount += agg.TotalAmount
		cur.OrderCount += agg.OrderCount
		if cur.CustomerName == "" && agg.CustomerName != "" {
			cur.CustomerName = agg.CustomerName
		}
	}
}

// BuildAggregatesWithCancel 在并行聚合前后各观测一次取消检查点
func BuildAggregatesWithCancel(rows []model.NormalizedRow, opts AggregateOptions, cancel *CancelToken) (map[string]*model.CustomerAggregate, error) {
	if cancel.Cancelled() {
		return nil, ErrCancelled
	}
	result := BuildAggregates(rows, opts)
	if cancel.Cancelled() {
		return nil, ErrCancelled
	}
	return result, nil
}

// BuildAggregates 分块并行聚合规范化行。
// 数值结果与分块方式无关；名称的"首见"归属取决于分块与归并顺序，按约定不作保证。
func BuildAggregates(rows []model.NormalizedRow, opts AggregateOptions) map[string]*model.CustomerAggregate {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	minChunk := opts.MinChunkSize
	if minChunk <= 0 {
		minChunk = defaultMinChunkSize
	}

	if len(rows) == 0 {
		return make(map[string]*model.CustomerAggregate)
	}

	chunkSize := len(rows) / workers
	if chunkSize < minChunk {
		chunkSize = minChunk
	}

	var chunks [][]model.NormalizedRow
	for start := 0; start < len(rows); start += chunkSize {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}

	// 并行阶段：每个分块独占自己的局部 map，无共享可变状态
	partials := make([]map[string]*model.CustomerAggregate, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []model.NormalizedRow) {
			defer wg.Done()
			local := make(map[string]*model.CustomerAggregate)
			for j := range chunk {
				accumulateRow(local, &chunk[j])
			}
			partials[i] = local
		}(i, chunk)
	}
	wg.Wait()

	// 单线程归并阶段
	result := make(map[string]*model.CustomerAggregate)
	for _, partial := range partials {
		mergeAggregate(result, partial)
	}
	return result
}
