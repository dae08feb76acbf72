package tui

import (
	"sync"
	"time"
)

// Frame is the handoff point between the orchestrator's draw loop and
// the bubbletea view: the loop writes the latest composed frame from a
// command goroutine, the UI goroutine reads it on each repaint.
type Frame struct {
	mu      sync.RWMutex
	content string
}

func (f *Frame) SetContent(frame string) {
	f.mu.Lock()
	f.content = frame
	f.mu.Unlock()
}

func (f *Frame) Content() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.content
}

// keyCancel adapts the quit key into the orchestrator's cancel poll.
// signal never blocks; a second press while one is pending is dropped.
type keyCancel struct {
	ch chan struct{}
}

func newKeyCancel() *keyCancel {
	return &keyCancel{ch: make(chan struct{}, 1)}
}

func (c *keyCancel) Poll(timeout time.Duration) bool {
	select {
	case <-c.ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (c *keyCancel) signal() {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

// drain clears a stale signal left over from a previous load.
func (c *keyCancel) drain() {
	select {
	case <-c.ch:
	default:
	}
}
