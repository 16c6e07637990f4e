package threadex

import "context"

// Navigator drives a live page-rendering context to a URL.
type Navigator interface {
	// Navigate loads url and waits for the load to complete.
	// The wait is time-bounded; a wait that times out is not an error.
	Navigate(ctx context.Context, url string) error
}

// PageSource reads the current state of a live page.
type PageSource interface {
	// URL returns the address of the currently loaded document.
	URL(ctx context.Context) (string, error)

	// HTML returns a serialization of the current rendered DOM.
	HTML(ctx context.Context) (string, error)
}

// PageProbe lists the thread references currently rendered on a page.
type PageProbe interface {
	Probe(ctx context.Context) ([]ThreadRef, error)
}

// PageAction reveals more items on a lazily loaded page,
// typically by scrolling it and its scrollable containers to the end.
type PageAction interface {
	Advance(ctx context.Context) error
}

// ContentExtractor extracts the thread shown on the current page.
type ContentExtractor interface {
	// ExtractThread returns the best-effort title, URL and content.
	// Empty content means nothing could be derived and is not an error.
	ExtractThread(ctx context.Context) (*Thread, error)
}

// ThreadStore persists exported Markdown documents.
type ThreadStore interface {
	// Save writes content under filename, replacing any existing file.
	Save(ctx context.Context, filename, content string) error
}

// LoginProbe reports whether the live page shows a signed-in session.
type LoginProbe interface {
	CheckLogin(ctx context.Context) (bool, error)
}
