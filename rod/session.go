package rod

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/threadex"
	"github.com/go-rod/rod"
	"github.com/ysmood/gson"
)

var (
	_ threadex.Navigator  = (*Session)(nil)
	_ threadex.PageSource = (*Session)(nil)
	_ threadex.PageAction = (*Session)(nil)
)

// scrollScript scrolls the window and every scrollable container matching
// one of the selectors to its end. It returns the number of containers
// scrolled.
const scrollScript = `(selectors) => {
	window.scrollTo(0, document.body ? document.body.scrollHeight : 0);
	let scrolled = 0;
	for (const selector of selectors) {
		let elements;
		try {
			elements = document.querySelectorAll(selector);
		} catch (e) {
			continue;
		}
		for (const el of elements) {
			if (el.scrollHeight > el.clientHeight) {
				el.scrollTop = el.scrollHeight;
				scrolled++;
			}
		}
	}
	return scrolled;
}`

// Session is one browser tab.
type Session struct {
	page              *rod.Page
	owned             bool
	navigationTimeout time.Duration
	scrollSelectors   []string
	logger            *slog.Logger
}

// Navigate loads url and waits for the load event. A load that does not
// finish within the navigation timeout is logged and treated as success:
// single-page apps often never fire it, and the settle delay follows anyway.
func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx)
	if s.navigationTimeout > 0 {
		p = p.Timeout(s.navigationTimeout)
	}

	err := p.Navigate(url)
	if err == nil {
		err = p.WaitLoad()
	}
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		s.logger.Warn("navigation timed out, continuing", "url", url, "timeout", s.navigationTimeout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// URL returns the tab's current URL.
func (s *Session) URL(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// HTML returns the tab's rendered HTML.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// Advance scrolls the page so the library loads its next batch of threads.
func (s *Session) Advance(ctx context.Context) error {
	res, err := s.page.Context(ctx).Eval(scrollScript, gson.New(s.scrollSelectors))
	if err != nil {
		return fmt.Errorf("scroll: %w", err)
	}
	s.logger.Debug("scrolled", "containers", res.Value.Int())
	return nil
}

// Close closes the tab if the session opened it. Adopted tabs stay open.
func (s *Session) Close() error {
	if !s.owned {
		return nil
	}
	return s.page.Close()
}
