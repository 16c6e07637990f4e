package export

import (
	"context"
	"fmt"

	"github.com/fwojciec/threadex"
)

var (
	_ threadex.PageProbe        = (*PageProbe)(nil)
	_ threadex.ContentExtractor = (*PageExtractor)(nil)
	_ threadex.LoginProbe       = (*PageLogin)(nil)
)

// PageProbe reports the thread links currently rendered on a live page.
type PageProbe struct {
	Page     threadex.PageSource
	Selector threadex.ThreadSelector
}

// Probe snapshots the page and selects its thread links.
func (p *PageProbe) Probe(ctx context.Context) ([]threadex.ThreadRef, error) {
	pageURL, html, err := snapshot(ctx, p.Page)
	if err != nil {
		return nil, err
	}
	return p.Selector.SelectThreads(html, pageURL)
}

// PageExtractor extracts the thread shown on a live page.
type PageExtractor struct {
	Page      threadex.PageSource
	Extractor threadex.DocumentExtractor
}

// ExtractThread snapshots the page and extracts its thread.
func (e *PageExtractor) ExtractThread(ctx context.Context) (*threadex.Thread, error) {
	pageURL, html, err := snapshot(ctx, e.Page)
	if err != nil {
		return nil, err
	}
	return e.Extractor.Extract(html, pageURL)
}

// PageLogin checks a live page for a signed-in session.
type PageLogin struct {
	Page     threadex.PageSource
	Detector threadex.LoginDetector
}

// CheckLogin snapshots the page and looks for logged-in markers.
func (l *PageLogin) CheckLogin(ctx context.Context) (bool, error) {
	html, err := l.Page.HTML(ctx)
	if err != nil {
		return false, fmt.Errorf("page html: %w", err)
	}
	return l.Detector.LoggedIn(html)
}

func snapshot(ctx context.Context, page threadex.PageSource) (string, string, error) {
	pageURL, err := page.URL(ctx)
	if err != nil {
		return "", "", fmt.Errorf("page url: %w", err)
	}
	html, err := page.HTML(ctx)
	if err != nil {
		return "", "", fmt.Errorf("page html: %w", err)
	}
	return pageURL, html, nil
}
