// Package safe_close coordinates graceful shutdown of service components
// Package safe_close 协调服务组件的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose fans a close signal out to attached components and waits for
// them to finish
// SafeClose 将关闭信号分发给已注册的组件并等待它们完成
type SafeClose struct {
	mu          sync.Mutex
	closeSignal chan struct{}
	closed      bool
	closeErr    error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a component goroutine.
// The component must call done when it has fully stopped, and should begin
// shutting down once closeSignal is readable.
// Attach 注册一个组件协程。
// 组件完全停止后必须调用 done；closeSignal 可读后应开始关闭流程。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	done := func() { s.wg.Done() }
	go f(done, s.closeSignal)
}

// SendCloseSignal broadcasts the close signal.
// The first non-nil err is retained and returned by WaitClosed. Repeated
// calls are no-ops.
// SendCloseSignal 广播关闭信号。
// 第一个非 nil 的 err 会被保留并由 WaitClosed 返回，重复调用不生效。
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached component has called done
// WaitClosed 阻塞直到所有已注册组件调用 done
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}
