package mock

import "github.com/fwojciec/threadex"

// Compile-time interface verification.
var (
	_ threadex.DocumentExtractor = (*DocumentExtractor)(nil)
	_ threadex.ThreadSelector    = (*ThreadSelector)(nil)
	_ threadex.LoginDetector     = (*LoginDetector)(nil)
)

// DocumentExtractor is a mock implementation of threadex.DocumentExtractor.
type DocumentExtractor struct {
	ExtractFn func(html string, pageURL string) (*threadex.Thread, error)
}

func (e *DocumentExtractor) Extract(html string, pageURL string) (*threadex.Thread, error) {
	return e.ExtractFn(html, pageURL)
}

// ThreadSelector is a mock implementation of threadex.ThreadSelector.
type ThreadSelector struct {
	SelectThreadsFn func(html string, baseURL string) ([]threadex.ThreadRef, error)
}

func (s *ThreadSelector) SelectThreads(html string, baseURL string) ([]threadex.ThreadRef, error) {
	return s.SelectThreadsFn(html, baseURL)
}

// LoginDetector is a mock implementation of threadex.LoginDetector.
type LoginDetector struct {
	LoggedInFn func(html string) (bool, error)
}

func (d *LoginDetector) LoggedIn(html string) (bool, error) {
	return d.LoggedInFn(html)
}
