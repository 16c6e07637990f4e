package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/threadex"
	"golang.org/x/net/html"
)

// Ensure Extractor implements threadex.DocumentExtractor.
var _ threadex.DocumentExtractor = (*Extractor)(nil)

// SectionSeparator separates content sections in an extracted thread.
const SectionSeparator = "\n\n---\n\n"

// Extractor pulls a thread's title and content out of a rendered page using
// the selectors of a site profile.
type Extractor struct {
	title      cascadia.SelectorGroup
	content    cascadia.SelectorGroup
	main       cascadia.SelectorGroup
	suffix     string
	minSection int
	converter  threadex.Converter
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithConverter renders sections through c instead of plain visible text.
// Sections fall back to visible text when conversion fails or is empty.
func WithConverter(c threadex.Converter) ExtractorOption {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewExtractor compiles the profile's title and content selectors.
func NewExtractor(p *threadex.Profile, opts ...ExtractorOption) (*Extractor, error) {
	if p == nil {
		return nil, threadex.Errorf(threadex.EINVALID, "profile required")
	}
	title, err := compileGroup(p.TitleSelector)
	if err != nil {
		return nil, err
	}
	content, err := compileGroup(p.ContentSelectors...)
	if err != nil {
		return nil, err
	}
	main, err := compileGroup(p.MainSelectors...)
	if err != nil {
		return nil, err
	}
	e := &Extractor{
		title:      title,
		content:    content,
		main:       main,
		suffix:     p.TitleSuffix,
		minSection: p.MinSectionLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract returns the thread shown in rawHTML.
//
// The title is the text of the first title-selector match, else the document
// title without the site suffix, else "Untitled". Content is every content
// section with at least MinSectionLength characters of visible text, joined
// by SectionSeparator. Without such sections the first main region is used,
// and when that is missing or blank, the whole body.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*threadex.Thread, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, threadex.Errorf(threadex.EINVALID, "HTML content is empty")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, threadex.Errorf(threadex.EINVALID, "failed to parse HTML: %v", err)
	}

	title := e.extractTitle(doc)
	doc.Find(invisibleSelector).Remove()

	return &threadex.Thread{
		Title:   title,
		URL:     pageURL,
		Content: e.extractContent(doc),
	}, nil
}

func (e *Extractor) extractTitle(doc *goquery.Document) string {
	if e.title != nil {
		if n := cascadia.Query(doc.Get(0), e.title); n != nil {
			if t := threadex.NormalizeSpace(doc.FindNodes(n).Text()); t != "" {
				return t
			}
		}
	}
	if t := doc.Find("title").First().Text(); t != "" {
		if e.suffix != "" {
			t = strings.Replace(t, e.suffix, "", 1)
		}
		if t = threadex.NormalizeSpace(t); t != "" {
			return t
		}
	}
	return threadex.UntitledTitle
}

func (e *Extractor) extractContent(doc *goquery.Document) string {
	root := doc.Get(0)

	if e.content != nil {
		var sections []string
		for _, n := range cascadia.QueryAll(root, e.content) {
			text := VisibleText(n)
			if utf8.RuneCountInString(text) < e.minSection || text == "" {
				continue
			}
			sections = append(sections, e.render(doc, n, text))
		}
		if len(sections) > 0 {
			return strings.Join(sections, SectionSeparator)
		}
	}

	if e.main != nil {
		if n := cascadia.Query(root, e.main); n != nil {
			if text := VisibleText(n); text != "" {
				return e.render(doc, n, text)
			}
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return VisibleText(root)
	}
	return e.render(doc, body.Get(0), VisibleText(body.Get(0)))
}

// render returns the section as Markdown when a converter is configured,
// falling back to its visible text.
func (e *Extractor) render(doc *goquery.Document, n *html.Node, text string) string {
	if e.converter == nil {
		return text
	}
	outer, err := goquery.OuterHtml(doc.FindNodes(n))
	if err != nil {
		return text
	}
	md, err := e.converter.Convert(outer)
	if err != nil {
		return text
	}
	if md = strings.TrimSpace(md); md == "" {
		return text
	}
	return md
}
