package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/threadex"
	"github.com/fwojciec/threadex/collect"
	"github.com/fwojciec/threadex/export"
)

// Run executes the all command.
func (c *AllCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Collecting threads from %s\n", deps.Profile.ListingURL())
	deps.Exporter.CollectProgress = func(ev collect.RoundEvent) {
		if ev.New > 0 {
			fmt.Fprintf(deps.Stdout, "  round %d: %d threads (+%d)\n", ev.Round, ev.Found, ev.New)
		}
	}

	progress := func(ev export.ProgressEvent) {
		switch ev.Type {
		case export.ProgressCollected:
			fmt.Fprintf(deps.Stdout, "Found %d threads\n", ev.Total)
		case export.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", ev.Completed+1, ev.Total, ev.Title)
		case export.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", ev.URL, errorMessage(ev.Error))
		case export.ProgressCompleted, export.ProgressFinished:
		}
	}

	res, err := deps.Exporter.ExportAll(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		if threadex.ErrorCode(err) == threadex.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: run 'threadex login' if you are not logged in")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d of %d threads to %s", res.Saved, res.Discovered, deps.OutputDir)
	if res.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", res.Failed)
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintf(deps.Stdout, "Index: %s\n", filepath.Join(deps.OutputDir, threadex.IndexFilename))
	return nil
}
