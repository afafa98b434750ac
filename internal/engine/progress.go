package engine

import "sync/atomic"

// ProgressEvent 进度事件，只做通知，不承载控制流
type ProgressEvent struct {
	Step    string `json:"step"`    // 阶段标识，如 "1/3"
	Message string `json:"message"` // 事件消息
	Percent int    `json:"percent"` // 0-100
	Detail  string `json:"detail"`  // 附加说明
}

// CancelToken 协作式取消令牌，由调用方置位，长任务在粗粒度检查点观测。
// 取消不是抢占式的：已分发的分块会先完成，再在下一个检查点退出。
type CancelToken struct {
	flag atomic.Bool
}

// NewCancelToken 创建取消令牌
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel 置位取消标志
func (t *CancelToken) Cancel() {
	t.flag.Store(true)
}

// Reset 复位，开始新任务前调用
func (t *CancelToken) Reset() {
	t.flag.Store(false)
}

// Cancelled 是否已请求取消
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.flag.Load()
}

// emitProgress 非阻塞发送进度事件，接收方不消费时直接丢弃
func emitProgress(ch chan<- ProgressEvent, ev ProgressEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	default:
	}
}
