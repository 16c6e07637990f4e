package readability

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/threadex"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements threadex.DocumentExtractor at compile time.
var _ threadex.DocumentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract a thread from a rendered page.
// It suits sites without a dedicated profile, where the answer is the page's
// main article.
type Extractor struct {
	converter   threadex.Converter
	titleSuffix string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders the article HTML as Markdown instead of using
// readability's plain text.
func WithConverter(c threadex.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// WithTitleSuffix strips suffix, such as " - Perplexity", from titles.
func WithTitleSuffix(suffix string) Option {
	return func(e *Extractor) {
		e.titleSuffix = suffix
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the thread it shows.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*threadex.Thread, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, threadex.Errorf(threadex.EINVALID, "empty HTML input")
	}

	// A malformed page URL only disables relative link resolution.
	u, err := url.Parse(pageURL)
	if err != nil {
		u = nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	title := article.Title
	if e.titleSuffix != "" {
		title = strings.Replace(title, e.titleSuffix, "", 1)
	}
	if title = threadex.NormalizeSpace(title); title == "" {
		title = threadex.UntitledTitle
	}

	content := strings.TrimSpace(article.TextContent)
	if e.converter != nil && strings.TrimSpace(article.Content) != "" {
		if md, err := e.converter.Convert(article.Content); err == nil && strings.TrimSpace(md) != "" {
			content = strings.TrimSpace(md)
		}
	}

	return &threadex.Thread{
		Title:   title,
		URL:     pageURL,
		Content: content,
	}, nil
}
