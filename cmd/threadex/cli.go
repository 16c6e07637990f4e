package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/threadex"
	"github.com/fwojciec/threadex/collect"
	"github.com/fwojciec/threadex/export"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Stdin       io.Reader
	Logger      *slog.Logger
	Profile     *threadex.Profile
	Profiles    *threadex.ProfileRegistry
	OutputDir   string
	UserDataDir string
	Navigator   threadex.Navigator
	Login       threadex.LoginProbe
	Waiter      threadex.Waiter
	Collector   *collect.Collector
	Exporter    *export.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output      string `short:"o" default:"threadex-export" env:"THREADEX_OUTPUT" help:"Output directory for Markdown files"`
	Site        string `default:"perplexity" env:"THREADEX_SITE" help:"Site profile to use"`
	Profile     string `type:"path" env:"THREADEX_PROFILE" help:"YAML file with additional or overriding site profiles"`
	ControlURL  string `env:"THREADEX_CONTROL_URL" help:"Attach to a running Chrome at this DevTools URL instead of launching one"`
	UserDataDir string `env:"THREADEX_USER_DATA_DIR" help:"Chrome profile directory for the launched browser (keeps you logged in)"`
	Headless    bool   `default:"true" negatable:"" env:"THREADEX_HEADLESS" help:"Run the launched browser without a window"`
	Stealth     bool   `env:"THREADEX_STEALTH" help:"Hide browser automation from the site"`
	Extractor   string `enum:"selectors,readability,trafilatura" default:"selectors" env:"THREADEX_EXTRACTOR" help:"Content extractor (${enum})"`
	Plain       bool   `env:"THREADEX_PLAIN" help:"Export visible text instead of Markdown-formatted answers"`
	MaxRounds   int    `env:"THREADEX_MAX_ROUNDS" help:"Maximum scroll rounds when collecting the library (0 uses the profile)"`
	IdleRounds  int    `env:"THREADEX_IDLE_ROUNDS" help:"Stop collecting after this many rounds without new threads (0 uses the profile)"`
	Verbose     bool   `short:"v" env:"THREADEX_VERBOSE" help:"Log every browser operation to stderr"`

	Current CurrentCmd `cmd:"" help:"Export the thread open in the browser"`
	All     AllCmd     `cmd:"" help:"Export every thread in the library"`
	List    ListCmd    `cmd:"" help:"List the threads in the library"`
	Login   LoginCmd   `cmd:"" help:"Open the site in a browser window to log in"`
	Sites   SitesCmd   `cmd:"" help:"List available site profiles"`
}

// CurrentCmd is the "current" subcommand.
type CurrentCmd struct {
	URL string `arg:"" optional:"" help:"Thread URL to open before exporting"`
}

// AllCmd is the "all" subcommand.
type AllCmd struct{}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// LoginCmd is the "login" subcommand.
type LoginCmd struct{}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// errorMessage returns the user-facing message for err. Foreign errors keep
// their full text.
func errorMessage(err error) string {
	if threadex.ErrorCode(err) == threadex.EINTERNAL {
		return err.Error()
	}
	return threadex.ErrorMessage(err)
}
