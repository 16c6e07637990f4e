// Package rod drives a Chrome page through go-rod: launching or attaching to
// a browser, navigating, snapshotting rendered HTML and scrolling.
package rod

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/threadex"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Browser is a Chrome instance, either launched by threadex or attached to
// over the DevTools protocol.
//
// Browser is safe for concurrent use.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher // nil when attached
	control  string
	profile  *threadex.Profile
	stealth  bool
	logger   *slog.Logger

	mu     sync.Mutex
	closed atomic.Bool
}

type browserConfig struct {
	headless    bool
	userDataDir string
	controlURL  string
	stealth     bool
	bin         string
	logger      *slog.Logger
}

// BrowserOption configures a Browser.
type BrowserOption func(*browserConfig)

// WithHeadless runs a launched browser without a window. Defaults to true.
func WithHeadless(headless bool) BrowserOption {
	return func(c *browserConfig) {
		c.headless = headless
	}
}

// WithUserDataDir keeps the launched browser's profile, and with it the
// site login, in dir.
func WithUserDataDir(dir string) BrowserOption {
	return func(c *browserConfig) {
		c.userDataDir = dir
	}
}

// WithControlURL attaches to a running Chrome instead of launching one.
// Both a DevTools websocket URL and an http://host:port address are accepted.
func WithControlURL(u string) BrowserOption {
	return func(c *browserConfig) {
		c.controlURL = u
	}
}

// WithStealth injects the stealth script into every new document.
func WithStealth(enabled bool) BrowserOption {
	return func(c *browserConfig) {
		c.stealth = enabled
	}
}

// WithBin launches the Chrome binary at path instead of rod's lookup.
func WithBin(path string) BrowserOption {
	return func(c *browserConfig) {
		c.bin = path
	}
}

// WithLogger sets the logger for navigation warnings.
func WithLogger(logger *slog.Logger) BrowserOption {
	return func(c *browserConfig) {
		c.logger = logger
	}
}

// NewBrowser launches Chrome, or attaches to one when a control URL is set.
// Close must be called when the Browser is no longer needed.
func NewBrowser(profile *threadex.Profile, opts ...BrowserOption) (*Browser, error) {
	if profile == nil {
		return nil, threadex.Errorf(threadex.EINVALID, "profile required")
	}
	cfg := browserConfig{headless: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	b := &Browser{
		profile: profile,
		stealth: cfg.stealth,
		logger:  cfg.logger,
	}

	if cfg.controlURL != "" {
		u, err := launcher.ResolveURL(cfg.controlURL)
		if err != nil {
			return nil, fmt.Errorf("resolving control URL: %w", err)
		}
		browser := rod.New().ControlURL(u)
		if err := browser.Connect(); err != nil {
			return nil, fmt.Errorf("connecting to browser: %w", err)
		}
		b.browser = browser
		b.control = u
		return b, nil
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(cfg.headless)
	if cfg.userDataDir != "" {
		l = l.UserDataDir(cfg.userDataDir)
	}
	if cfg.bin != "" {
		l = l.Bin(cfg.bin)
	}
	if cfg.stealth {
		l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
		l.Delete(flags.Flag("enable-automation"))
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = l
	b.control = u
	return b, nil
}

// Attached reports whether the browser was attached to rather than launched.
func (b *Browser) Attached() bool {
	return b.launcher == nil
}

// ControlURL returns the DevTools websocket URL of the browser.
func (b *Browser) ControlURL() string {
	return b.control
}

// Session returns a page to work on. An attached browser adopts the first
// open tab on the profile's site, so the thread the user is looking at is
// the one exported; otherwise a new tab is opened at startURL.
func (b *Browser) Session(ctx context.Context, startURL string) (*Session, error) {
	if b.closed.Load() {
		return nil, threadex.Errorf(threadex.EINVALID, "browser is closed")
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Attached() {
		page, err := b.findSiteTab()
		if err != nil {
			return nil, err
		}
		if page != nil {
			b.logger.Info("adopting open tab", "site", b.profile.Host())
			return b.newSession(ctx, page, false)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: startURL})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	return b.newSession(ctx, page, true)
}

func (b *Browser) newSession(ctx context.Context, page *rod.Page, owned bool) (*Session, error) {
	if b.stealth {
		if _, err := page.Context(ctx).EvalOnNewDocument(stealth.JS); err != nil {
			b.logger.Warn("stealth injection failed, proceeding without stealth", "err", err)
		}
	}
	return &Session{
		page:              page,
		owned:             owned,
		navigationTimeout: b.profile.NavigationTimeout,
		scrollSelectors:   b.profile.ScrollSelectors,
		logger:            b.logger,
	}, nil
}

// findSiteTab returns the first page tab on the profile's site, or nil.
func (b *Browser) findSiteTab() (*rod.Page, error) {
	pages, err := b.browser.Pages()
	if err != nil {
		return nil, fmt.Errorf("listing tabs: %w", err)
	}
	for _, p := range pages {
		info, err := p.Info()
		if err != nil {
			continue
		}
		if b.profile.MatchesURL(info.URL) {
			return p, nil
		}
	}
	return nil, nil
}

// Close releases browser resources. A launched browser is shut down; an
// attached one is only disconnected from. Close is safe to call multiple
// times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.launcher == nil {
		// Closing the connection would close the user's browser.
		return nil
	}
	err := b.browser.Close()
	b.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of a launched browser, or 0 when
// attached.
func (b *Browser) LauncherPID() int {
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
