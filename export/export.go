// Package export writes threads from a live page to Markdown files.
// It exports either the thread currently open or, by collecting the
// library first, every thread the library lists.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/threadex"
	"github.com/fwojciec/threadex/collect"
)

// Exporter exports threads from a single live page.
type Exporter struct {
	Profile   *threadex.Profile
	Page      threadex.PageSource
	Navigator threadex.Navigator
	Extractor threadex.ContentExtractor
	Probe     threadex.PageProbe
	Action    threadex.PageAction
	Store     threadex.ThreadStore
	Waiter    threadex.Waiter

	// CollectProgress, if set, receives one event per collection round.
	CollectProgress collect.ProgressFunc

	// Now returns the export date. Defaults to time.Now.
	Now func() time.Time
}

// CurrentResult describes a single exported thread.
type CurrentResult struct {
	Title    string
	URL      string
	Filename string
}

// Result holds the outcome of a bulk export.
type Result struct {
	Discovered int
	Saved      int
	Failed     int
	Rounds     int
	Stop       collect.StopReason
	Entries    []threadex.IndexEntry
}

// ProgressEvent reports progress during a bulk export.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Title     string
	Filename  string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressCollected ProgressType = iota
	ProgressStarted
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting export progress.
type ProgressFunc func(event ProgressEvent)

// ExportCurrent exports the thread open on the page.
func (e *Exporter) ExportCurrent(ctx context.Context) (*CurrentResult, error) {
	pageURL, err := e.verifySite(ctx)
	if err != nil {
		return nil, err
	}

	thread, err := e.Extractor.ExtractThread(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract thread: %w", err)
	}
	if strings.TrimSpace(thread.Content) == "" {
		return nil, threadex.Errorf(threadex.EEMPTY, "no content found on %s", pageURL)
	}

	title := thread.Title
	if title == "" {
		title = threadex.UntitledTitle
	}
	url := thread.URL
	if url == "" {
		url = pageURL
	}

	filename := threadex.SingleFilename(title)
	md := threadex.FormatMarkdown(title, url, thread.Content, e.now())
	if err := e.Store.Save(ctx, filename, md); err != nil {
		return nil, fmt.Errorf("save %s: %w", filename, err)
	}

	return &CurrentResult{Title: title, URL: url, Filename: filename}, nil
}

// ExportAll collects every thread in the library and exports each one in
// turn. A thread that fails is reported through progress and skipped; the
// index lists the threads that were saved.
func (e *Exporter) ExportAll(ctx context.Context, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	if _, err := e.verifySite(ctx); err != nil {
		return nil, err
	}

	if err := e.Navigator.Navigate(ctx, e.Profile.ListingURL()); err != nil {
		return nil, fmt.Errorf("navigate to library: %w", err)
	}
	if err := e.Waiter.Wait(ctx, e.Profile.ListingDelay); err != nil {
		return nil, err
	}

	collector := collect.NewCollector(e.Probe, e.Action, e.Waiter)
	collector.Config = collect.ConfigFromProfile(e.Profile)
	collector.Progress = e.CollectProgress

	collected, err := collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect threads: %w", err)
	}

	res := &Result{
		Discovered: len(collected.Threads),
		Rounds:     collected.Rounds,
		Stop:       collected.Stop,
	}
	if res.Discovered == 0 {
		return res, threadex.Errorf(threadex.ENOTFOUND, "no threads found in %s", e.Profile.ListingURL())
	}

	total := res.Discovered
	progress(ProgressEvent{Type: ProgressCollected, Total: total})

	var prev stalePage

	for i, ref := range collected.Threads {
		if i > 0 && e.Profile.ItemDelay > 0 {
			if err := e.Waiter.Wait(ctx, e.Profile.ItemDelay); err != nil {
				return res, err
			}
		}

		progress(ProgressEvent{Type: ProgressStarted, Completed: i, Total: total, URL: ref.URL, Title: ref.Title})

		entry, err := e.exportThread(ctx, i+1, ref, &prev)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			res.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, URL: ref.URL, Title: ref.Title, Error: err})
			continue
		}

		res.Saved++
		res.Entries = append(res.Entries, entry)
		progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, URL: ref.URL, Title: entry.Title, Filename: entry.Filename})
	}

	index := threadex.FormatIndex(res.Entries, e.now())
	if err := e.Store.Save(ctx, threadex.IndexFilename, index); err != nil {
		return res, fmt.Errorf("save index: %w", err)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total, Filename: threadex.IndexFilename})
	return res, nil
}

// exportThread navigates to ref and saves its content as the position-th file.
func (e *Exporter) exportThread(ctx context.Context, position int, ref threadex.ThreadRef, prev *stalePage) (threadex.IndexEntry, error) {
	if err := e.Navigator.Navigate(ctx, ref.URL); err != nil {
		return threadex.IndexEntry{}, fmt.Errorf("navigate: %w", err)
	}
	if err := e.Waiter.Wait(ctx, e.Profile.SettleDelay); err != nil {
		return threadex.IndexEntry{}, err
	}

	thread, err := e.Extractor.ExtractThread(ctx)
	if err != nil {
		return threadex.IndexEntry{}, fmt.Errorf("extract thread: %w", err)
	}
	if strings.TrimSpace(thread.Content) == "" {
		return threadex.IndexEntry{}, threadex.Errorf(threadex.EEMPTY, "no content found at %s", ref.URL)
	}
	if e.Profile.SkipStalePages && prev.repeats(thread.Content) {
		return threadex.IndexEntry{}, threadex.Errorf(threadex.EINVALID, "stale page at %s: content matches the previous thread", ref.URL)
	}

	title := ref.Title
	if title == "" || (title == threadex.UntitledTitle && thread.Title != "") {
		title = thread.Title
	}
	if title == "" {
		title = threadex.UntitledTitle
	}

	filename := threadex.BulkFilename(position, title)
	md := threadex.FormatMarkdown(title, ref.URL, thread.Content, e.now())
	if err := e.Store.Save(ctx, filename, md); err != nil {
		return threadex.IndexEntry{}, fmt.Errorf("save %s: %w", filename, err)
	}
	return threadex.IndexEntry{Title: title, Filename: filename}, nil
}

// verifySite returns the page URL, or EWRONGSITE when the page is not on the
// profile's site.
func (e *Exporter) verifySite(ctx context.Context) (string, error) {
	pageURL, err := e.Page.URL(ctx)
	if err != nil {
		return "", fmt.Errorf("page url: %w", err)
	}
	if !e.Profile.MatchesURL(pageURL) {
		return "", threadex.Errorf(threadex.EWRONGSITE, "page %s is not on %s; open a %s thread first", pageURL, e.Profile.Host(), e.Profile.Name)
	}
	return pageURL, nil
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// stalePage remembers the content hash of the previously extracted thread.
// The page sometimes still shows the previous thread after navigation.
type stalePage struct {
	hash uint64
	seen bool
}

// repeats reports whether content matches the previous thread and records it.
func (p *stalePage) repeats(content string) bool {
	h := xxhash.Sum64String(content)
	same := p.seen && p.hash == h
	p.hash, p.seen = h, true
	return same
}
