package threadex

// DocumentExtractor extracts a thread from a rendered HTML snapshot.
type DocumentExtractor interface {
	// Extract parses html and returns the thread title, URL and content.
	// The pageURL is reported as the thread URL.
	// Returns EINVALID for empty input.
	Extract(html string, pageURL string) (*Thread, error)
}

// ThreadSelector finds links to threads in a rendered HTML snapshot.
type ThreadSelector interface {
	// SelectThreads returns the thread references found in html.
	// Relative hrefs are resolved against baseURL. Results keep document
	// order and may contain the same URL more than once.
	SelectThreads(html string, baseURL string) ([]ThreadRef, error)
}

// LoginDetector decides from a rendered HTML snapshot whether a user is
// signed in.
type LoginDetector interface {
	LoggedIn(html string) (bool, error)
}
