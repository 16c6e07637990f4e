package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/threadex"
	"github.com/fwojciec/threadex/collect"
	"github.com/fwojciec/threadex/export"
	"github.com/fwojciec/threadex/fs"
	"github.com/fwojciec/threadex/goquery"
	"github.com/fwojciec/threadex/htmltomarkdown"
	"github.com/fwojciec/threadex/readability"
	"github.com/fwojciec/threadex/rod"
	tslog "github.com/fwojciec/threadex/slog"
	"github.com/fwojciec/threadex/trafilatura"
	"github.com/fwojciec/threadex/yaml"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Chrome profile directory used when --user-data-dir is not set.
	UserDataDir string

	// Input for interactive commands.
	Stdin io.Reader

	browser *rod.Browser
	session *rod.Session
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		UserDataDir: defaultUserDataDir(),
		Stdin:       os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.session != nil {
		_ = m.session.Close()
	}
	if m.browser != nil {
		return m.browser.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
		Waiter: threadex.Sleep,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("threadex"),
		kong.Description("Export AI assistant conversation threads to Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'threadex --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	deps.Profiles = threadex.NewProfileRegistry()
	if cli.Profile != "" {
		if _, err := yaml.LoadProfiles(cli.Profile, deps.Profiles); err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
	}
	profile, err := resolveProfile(cli, deps.Profiles)
	if err != nil {
		return err
	}
	deps.Profile = profile
	deps.OutputDir = cli.Output
	deps.UserDataDir = cli.UserDataDir
	if deps.UserDataDir == "" {
		deps.UserDataDir = m.UserDataDir
	}

	cmd := strings.Fields(kongCtx.Command())[0]
	if cmd != "sites" {
		defer m.Close()
		if err := m.wire(cli, cmd, deps); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// resolveProfile returns a copy of the selected profile with CLI overrides.
func resolveProfile(cli *CLI, profiles *threadex.ProfileRegistry) (*threadex.Profile, error) {
	p, err := profiles.Get(cli.Site)
	if err != nil {
		return nil, fmt.Errorf("%s (available: %s)", threadex.ErrorMessage(err), strings.Join(profiles.List(), ", "))
	}
	profile := *p
	if cli.MaxRounds > 0 {
		profile.MaxRounds = cli.MaxRounds
	}
	if cli.IdleRounds > 0 {
		profile.IdleRounds = cli.IdleRounds
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// wire starts the browser and builds the services the command needs.
func (m *Main) wire(cli *CLI, cmd string, deps *Dependencies) error {
	profile := deps.Profile
	logger := deps.Logger

	opts := []rod.BrowserOption{
		rod.WithHeadless(cli.Headless && cmd != "login"),
		rod.WithUserDataDir(deps.UserDataDir),
		rod.WithStealth(cli.Stealth),
		rod.WithLogger(logger),
	}
	if cli.ControlURL != "" && cmd != "login" {
		opts = append(opts, rod.WithControlURL(cli.ControlURL))
	}

	browser, err := rod.NewBrowser(profile, opts...)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or pass --control-url")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	m.browser = browser

	session, err := browser.Session(deps.Ctx, profile.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	m.session = session

	page := tslog.NewLoggingPageSource(session, logger)
	navigator := tslog.NewLoggingNavigator(session, logger)
	action := tslog.NewLoggingAction(session, logger)
	deps.Navigator = navigator

	selector, err := goquery.NewThreadSelector(profile)
	if err != nil {
		return err
	}
	probe := tslog.NewLoggingProbe(&export.PageProbe{Page: page, Selector: selector}, logger)

	if len(profile.LoggedInSelectors) > 0 {
		detector, err := goquery.NewLoginDetector(profile)
		if err != nil {
			return err
		}
		deps.Login = tslog.NewLoggingLoginProbe(&export.PageLogin{Page: page, Detector: detector}, logger)
	}

	docExtractor, err := newDocumentExtractor(cli.Extractor, cli.Plain, profile)
	if err != nil {
		return err
	}
	extractor := tslog.NewLoggingExtractor(&export.PageExtractor{Page: page, Extractor: docExtractor}, logger)

	collector := collect.NewCollector(probe, action, deps.Waiter)
	collector.Config = collect.ConfigFromProfile(profile)
	deps.Collector = collector

	deps.Exporter = &export.Exporter{
		Profile:   profile,
		Page:      page,
		Navigator: navigator,
		Extractor: extractor,
		Probe:     probe,
		Action:    action,
		Store:     tslog.NewLoggingStore(fs.NewStore(deps.OutputDir), logger),
		Waiter:    deps.Waiter,
	}
	return nil
}

// newDocumentExtractor returns the named content extractor. Unless plain is
// set, sections are rendered as Markdown.
func newDocumentExtractor(name string, plain bool, profile *threadex.Profile) (threadex.DocumentExtractor, error) {
	var conv threadex.Converter
	if !plain {
		conv = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(profile.BaseURL))
	}

	switch name {
	case "", "selectors":
		var opts []goquery.ExtractorOption
		if conv != nil {
			opts = append(opts, goquery.WithConverter(conv))
		}
		return goquery.NewExtractor(profile, opts...)
	case "readability":
		opts := []readability.Option{readability.WithTitleSuffix(profile.TitleSuffix)}
		if conv != nil {
			opts = append(opts, readability.WithConverter(conv))
		}
		return readability.NewExtractor(opts...), nil
	case "trafilatura":
		opts := []trafilatura.Option{trafilatura.WithTitleSuffix(profile.TitleSuffix)}
		if conv != nil {
			opts = append(opts, trafilatura.WithConverter(conv))
		}
		return trafilatura.NewExtractor(opts...), nil
	}
	return nil, threadex.Errorf(threadex.EINVALID, "unknown extractor %q", name)
}

func defaultUserDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".threadex", "chrome")
	}
	return filepath.Join(home, ".threadex", "chrome")
}
