package store

import (
	"sync"
	"time"

	"salescope/internal/model"
)

// Dataset 一个已导入的数据源：规范化行与按客户聚合的缓存
type Dataset struct {
	ID         string
	FilePath   string
	FileName   string
	LoadedAt   time.Time
	Rows       []model.NormalizedRow
	Aggregates map[string]*model.CustomerAggregate
}

// SourceInfo 数据源摘要信息
type SourceInfo struct {
	ID        string `json:"id"`
	FilePath  string `json:"file_path"`
	FileName  string `json:"file_name"`
	LoadedAt  string `json:"loaded_at"`
	TotalRows int    `json:"total_rows"`
}

// Store 数据集存储，每个数据源一个槽位，单把读写锁互斥。
// 作为显式参数注入核心函数，不做环境全局状态。
type Store struct {
	mu        sync.RWMutex
	sources   map[string]*Dataset
	order     []string // 注册顺序
	currentID string
}

// New 创建数据集存储
func New() *Store {
	return &Store{
		sources: make(map[string]*Dataset),
	}
}

// Put 注册数据源并设为当前
func (s *Store) Put(ds *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sources[ds.ID]; !exists {
		s.order = append(s.order, ds.ID)
	}
	s.sources[ds.ID] = ds
	s.currentID = ds.ID
}

// Get 按 ID 取数据源
func (s *Store) Get(id string) (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.sources[id]
	return ds, ok
}

// Current 取当前数据源
func (s *Store) Current() (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentID == "" {
		return nil, false
	}
	ds, ok := s.sources[s.currentID]
	return ds, ok
}

// SetCurrent 切换当前数据源
func (s *Store) SetCurrent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[id]; !ok {
		return false
	}
	s.currentID = id
	return true
}

// CurrentID 当前数据源 ID，无当前源时为空串
func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// Delete 删除数据源；删除的是当前源时回退到剩余的第一个
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[id]; !ok {
		return
	}
	delete(s.sources, id)
	for i, sid := range s.order {
		if sid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.currentID == id {
		if len(s.order) > 0 {
			s.currentID = s.order[0]
		} else {
			s.currentID = ""
		}
	}
}

// HasPath 指定文件路径是否已注册为数据源
func (s *Store) HasPath(filePath string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ds := range s.sources {
		if ds.FilePath == filePath {
			return true
		}
	}
	return false
}

// List 按注册顺序返回数据源摘要
func (s *Store) List() []SourceInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]SourceInfo, 0, len(s.order))
	for _, id := range s.order {
		ds, ok := s.sources[id]
		if !ok {
			continue
		}
		infos = append(infos, SourceInfo{
			ID:        ds.ID,
			FilePath:  ds.FilePath,
			FileName:  ds.FileName,
			LoadedAt:  ds.LoadedAt.Format("2006-01-02 15:04:05"),
			TotalRows: len(ds.Rows),
		})
	}
	return infos
}

// Count 数据源数量
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources)
}

// Clear 清空全部数据源
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sources = make(map[string]*Dataset)
	s.order = nil
	s.currentID = ""
}
