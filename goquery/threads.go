package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/threadex"
	"golang.org/x/net/html"
)

// Ensure ThreadSelector implements threadex.ThreadSelector.
var _ threadex.ThreadSelector = (*ThreadSelector)(nil)

// ThreadSelector finds thread links in a rendered library page using the
// link selectors of a site profile.
type ThreadSelector struct {
	links     []cascadia.SelectorGroup
	linkTitle cascadia.SelectorGroup
	profile   *threadex.Profile
}

// NewThreadSelector compiles the profile's link selectors.
func NewThreadSelector(p *threadex.Profile) (*ThreadSelector, error) {
	if p == nil {
		return nil, threadex.Errorf(threadex.EINVALID, "profile required")
	}
	links, err := compileEach(p.ThreadLinkSelectors)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, threadex.Errorf(threadex.EINVALID, "profile %q: at least one thread link selector required", p.Name)
	}
	linkTitle, err := compileGroup(p.LinkTitleSelector)
	if err != nil {
		return nil, err
	}
	return &ThreadSelector{links: links, linkTitle: linkTitle, profile: p}, nil
}

// SelectThreads returns the thread links present in rawHTML. Matches from
// all selectors are unioned; an element matched by several selectors is
// considered once, in the order it was first matched. Links without a thread
// path, or whose title is a single character or less, are skipped. The same
// URL may appear more than once; deduplication happens in the collector.
func (s *ThreadSelector) SelectThreads(rawHTML string, baseURL string) ([]threadex.ThreadRef, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, threadex.Errorf(threadex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, threadex.Errorf(threadex.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[*html.Node]bool)
	var refs []threadex.ThreadRef
	root := doc.Get(0)
	for _, group := range s.links {
		for _, node := range cascadia.QueryAll(root, group) {
			if seen[node] {
				continue
			}
			seen[node] = true

			sel := doc.FindNodes(node)
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				continue
			}
			if !s.profile.IsThreadPath(href) {
				continue
			}
			resolved := resolveURL(base, href)
			if resolved == "" {
				continue
			}
			title := s.linkTitleOf(sel)
			if utf8.RuneCountInString(title) <= 1 {
				continue
			}
			refs = append(refs, threadex.NewThreadRef(resolved, title))
		}
	}
	return refs, nil
}

// linkTitleOf picks a link's title: its visible text, then the text of a
// nested title element, then its title attribute, then "Untitled".
func (s *ThreadSelector) linkTitleOf(sel *goquery.Selection) string {
	if t := threadex.NormalizeSpace(VisibleText(sel.Get(0))); t != "" {
		return t
	}
	if s.linkTitle != nil {
		if n := cascadia.Query(sel.Get(0), s.linkTitle); n != nil {
			if t := threadex.NormalizeSpace(VisibleText(n)); t != "" {
				return t
			}
		}
	}
	if attr, ok := sel.Attr("title"); ok {
		if t := threadex.NormalizeSpace(attr); t != "" {
			return t
		}
	}
	return threadex.UntitledTitle
}

// resolveURL resolves href against base and strips the fragment.
// Returns an empty string if href cannot be parsed or is not http(s).
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
