package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/threadex"
)

var (
	_ threadex.Navigator        = (*LoggingNavigator)(nil)
	_ threadex.PageSource       = (*LoggingPageSource)(nil)
	_ threadex.PageProbe        = (*LoggingProbe)(nil)
	_ threadex.PageAction       = (*LoggingAction)(nil)
	_ threadex.ContentExtractor = (*LoggingExtractor)(nil)
	_ threadex.LoginProbe       = (*LoggingLoginProbe)(nil)
)

// LoggingNavigator wraps a Navigator with logging.
type LoggingNavigator struct {
	next   threadex.Navigator
	logger *slog.Logger
}

// NewLoggingNavigator creates a new LoggingNavigator.
func NewLoggingNavigator(next threadex.Navigator, logger *slog.Logger) *LoggingNavigator {
	return &LoggingNavigator{next: next, logger: logger}
}

// Navigate logs the URL being loaded and delegates to the wrapped navigator.
func (n *LoggingNavigator) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		n.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Navigate(ctx, url)
}

// LoggingPageSource wraps a PageSource with logging.
type LoggingPageSource struct {
	next   threadex.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next threadex.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// URL delegates to the wrapped source. Only failures are logged.
func (s *LoggingPageSource) URL(ctx context.Context) (url string, err error) {
	url, err = s.next.URL(ctx)
	if err != nil {
		s.logger.Info("page url", "err", err)
	}
	return url, err
}

// HTML logs the snapshot size and delegates to the wrapped source.
func (s *LoggingPageSource) HTML(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("page html",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HTML(ctx)
}

// LoggingProbe wraps a PageProbe with logging.
type LoggingProbe struct {
	next   threadex.PageProbe
	logger *slog.Logger
}

// NewLoggingProbe creates a new LoggingProbe.
func NewLoggingProbe(next threadex.PageProbe, logger *slog.Logger) *LoggingProbe {
	return &LoggingProbe{next: next, logger: logger}
}

// Probe logs the number of visible thread links.
func (p *LoggingProbe) Probe(ctx context.Context) (refs []threadex.ThreadRef, err error) {
	defer func(begin time.Time) {
		p.logger.Info("probe",
			"count", len(refs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Probe(ctx)
}

// LoggingAction wraps a PageAction with logging.
type LoggingAction struct {
	next   threadex.PageAction
	logger *slog.Logger
}

// NewLoggingAction creates a new LoggingAction.
func NewLoggingAction(next threadex.PageAction, logger *slog.Logger) *LoggingAction {
	return &LoggingAction{next: next, logger: logger}
}

// Advance delegates to the wrapped action and logs the operation.
func (a *LoggingAction) Advance(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		a.logger.Info("advance",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Advance(ctx)
}

// LoggingExtractor wraps a ContentExtractor with logging.
type LoggingExtractor struct {
	next   threadex.ContentExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next threadex.ContentExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractThread logs the extracted title and content size.
func (e *LoggingExtractor) ExtractThread(ctx context.Context) (thread *threadex.Thread, err error) {
	defer func(begin time.Time) {
		var url, title string
		var size int
		if thread != nil {
			url, title, size = thread.URL, thread.Title, len(thread.Content)
		}
		e.logger.Info("extract",
			"url", url,
			"title", title,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractThread(ctx)
}

// LoggingLoginProbe wraps a LoginProbe with logging.
type LoggingLoginProbe struct {
	next   threadex.LoginProbe
	logger *slog.Logger
}

// NewLoggingLoginProbe creates a new LoggingLoginProbe.
func NewLoggingLoginProbe(next threadex.LoginProbe, logger *slog.Logger) *LoggingLoginProbe {
	return &LoggingLoginProbe{next: next, logger: logger}
}

// CheckLogin logs the detected login state and delegates to the wrapped probe.
func (p *LoggingLoginProbe) CheckLogin(ctx context.Context) (ok bool, err error) {
	defer func(begin time.Time) {
		p.logger.Info("check login",
			"logged_in", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.CheckLogin(ctx)
}
