package trafilatura

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/threadex"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements threadex.DocumentExtractor at compile time.
var _ threadex.DocumentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract a thread from a rendered page.
type Extractor struct {
	converter   threadex.Converter
	titleSuffix string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders the extracted content node as Markdown instead of
// using trafilatura's plain text.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}

	title := result.Metadata.Title
	if e.titleSuffix != "" {
		title = strings.Replace(title, e.titleSuffix, "", 1)
	}
	if title = threadex.NormalizeSpace(title); title == "" {
		title = threadex.UntitledTitle
	}

	content := strings.TrimSpace(result.ContentText)
	if e.converter != nil && result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		if md, err := e.converter.Convert(contentHTML); err == nil && strings.TrimSpace(md) != "" {
			content = strings.TrimSpace(md)
		}
	}

	return &threadex.Thread{
		Title:   title,
		URL:     pageURL,
		Content: content,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
