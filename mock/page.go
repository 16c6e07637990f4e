package mock

import (
	"context"

	"github.com/fwojciec/threadex"
)

// Compile-time interface verification.
var (
	_ threadex.Navigator        = (*Navigator)(nil)
	_ threadex.PageSource       = (*PageSource)(nil)
	_ threadex.PageProbe        = (*PageProbe)(nil)
	_ threadex.PageAction       = (*PageAction)(nil)
	_ threadex.ContentExtractor = (*ContentExtractor)(nil)
	_ threadex.LoginProbe       = (*LoginProbe)(nil)
)

// Navigator is a mock implementation of threadex.Navigator.
type Navigator struct {
	NavigateFn func(ctx context.Context, url string) error
}

func (n *Navigator) Navigate(ctx context.Context, url string) error {
	return n.NavigateFn(ctx, url)
}

// PageSource is a mock implementation of threadex.PageSource.
type PageSource struct {
	URLFn  func(ctx context.Context) (string, error)
	HTMLFn func(ctx context.Context) (string, error)
}

func (s *PageSource) URL(ctx context.Context) (string, error) {
	return s.URLFn(ctx)
}

func (s *PageSource) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

// PageProbe is a mock implementation of threadex.PageProbe.
type PageProbe struct {
	ProbeFn func(ctx context.Context) ([]threadex.ThreadRef, error)
}

func (p *PageProbe) Probe(ctx context.Context) ([]threadex.ThreadRef, error) {
	return p.ProbeFn(ctx)
}

// PageAction is a mock implementation of threadex.PageAction.
type PageAction struct {
	AdvanceFn func(ctx context.Context) error
}

func (a *PageAction) Advance(ctx context.Context) error {
	return a.AdvanceFn(ctx)
}

// ContentExtractor is a mock implementation of threadex.ContentExtractor.
type ContentExtractor struct {
	ExtractThreadFn func(ctx context.Context) (*threadex.Thread, error)
}

func (e *ContentExtractor) ExtractThread(ctx context.Context) (*threadex.Thread, error) {
	return e.ExtractThreadFn(ctx)
}

// LoginProbe is a mock implementation of threadex.LoginProbe.
type LoginProbe struct {
	CheckLoginFn func(ctx context.Context) (bool, error)
}

func (p *LoginProbe) CheckLogin(ctx context.Context) (bool, error) {
	return p.CheckLoginFn(ctx)
}
