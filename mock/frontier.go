package mock

import (
	"context"

	"github.com/sitegrab/sitegrab"
)

var _ sitegrab.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of sitegrab.Frontier.
type Frontier struct {
	PushFn func(url string)
	PopFn  func() (string, bool)
	LenFn  func() int
}

func (f *Frontier) Push(url string) {
	f.PushFn(url)
}

func (f *Frontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

var _ sitegrab.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of sitegrab.Pacer.
type Pacer struct {
	WaitFn func(ctx context.Context) error
}

func (p *Pacer) Wait(ctx context.Context) error {
	if p.WaitFn == nil {
		return nil
	}
	return p.WaitFn(ctx)
}

var _ sitegrab.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of sitegrab.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
