package threadex

import (
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the maximum number of runes kept in a ThreadRef title.
const MaxTitleLength = 200

// UntitledTitle is used when no title can be derived for a thread.
const UntitledTitle = "Untitled"

// ThreadRef identifies one exportable thread. Identity is the URL.
type ThreadRef struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// NewThreadRef returns a ThreadRef with a whitespace-normalised title
// truncated to MaxTitleLength runes.
func NewThreadRef(url, title string) ThreadRef {
	return ThreadRef{URL: url, Title: TruncateRunes(NormalizeSpace(title), MaxTitleLength)}
}

// ThreadRefSet is an insertion-ordered set of ThreadRefs keyed by URL.
// The first title seen for a URL wins; later duplicates are dropped.
// The zero value is ready to use.
type ThreadRefSet struct {
	refs  []ThreadRef
	index map[string]struct{}
}

// NewThreadRefSet returns an empty set.
func NewThreadRefSet() *ThreadRefSet {
	return &ThreadRefSet{}
}

// Add inserts ref unless its URL is already present.
// Returns false if the ref was dropped as a duplicate.
func (s *ThreadRefSet) Add(ref ThreadRef) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[ref.URL]; ok {
		return false
	}
	s.index[ref.URL] = struct{}{}
	s.refs = append(s.refs, ref)
	return true
}

// Merge adds refs in order and returns how many were new.
func (s *ThreadRefSet) Merge(refs []ThreadRef) int {
	added := 0
	for _, ref := range refs {
		if s.Add(ref) {
			added++
		}
	}
	return added
}

// Contains reports whether a ref with the given URL is in the set.
func (s *ThreadRefSet) Contains(url string) bool {
	_, ok := s.index[url]
	return ok
}

// Len returns the number of refs in the set.
func (s *ThreadRefSet) Len() int {
	return len(s.refs)
}

// Refs returns a copy of the refs in insertion order.
func (s *ThreadRefSet) Refs() []ThreadRef {
	out := make([]ThreadRef, len(s.refs))
	copy(out, s.refs)
	return out
}

// Thread is the content extracted from one rendered thread page.
type Thread struct {
	Title   string
	URL     string
	Content string // empty means no content could be derived
}

// IndexEntry records one exported thread for the manifest.
type IndexEntry struct {
	Title    string
	Filename string
}

// NormalizeSpace trims s and collapses internal whitespace runs to single spaces.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateRunes returns at most n runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
