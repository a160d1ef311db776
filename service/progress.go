// ABOUTME: This file implements a goroutine-safe progress counter for long sync operations
// ABOUTME: Callers register expected work up front and tick completions as batches finish

package service

import "sync"

// Progress tracks completed work against an expected total. A nil Progress
// is valid and ignores all calls, so callers can skip reporting.
type Progress struct {
	mu        sync.Mutex
	expected  int
	completed int
	onChange  func(completed, expected int)
}

// NewProgress creates a counter. onChange, if non-nil, is invoked after
// every state change while holding no locks caller code can observe.
func NewProgress(onChange func(completed, expected int)) *Progress {
	return &Progress{onChange: onChange}
}

// AddExpected grows the expected total by n.
func (p *Progress) AddExpected(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	p.expected += n
	completed, expected := p.completed, p.expected
	p.mu.Unlock()
	p.notify(completed, expected)
}

// Tick records n completed units.
func (p *Progress) Tick(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	p.completed += n
	if p.completed > p.expected {
		p.completed = p.expected
	}
	completed, expected := p.completed, p.expected
	p.mu.Unlock()
	p.notify(completed, expected)
}

// Snapshot returns the current completed and expected counts.
func (p *Progress) Snapshot() (completed, expected int) {
	if p == nil {
		return 0, 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed, p.expected
}

func (p *Progress) notify(completed, expected int) {
	if p.onChange != nil {
		p.onChange(completed, expected)
	}
}
