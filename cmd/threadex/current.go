package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/threadex"
)

// Run executes the current command.
func (c *CurrentCmd) Run(deps *Dependencies) error {
	if c.URL != "" {
		if !deps.Profile.MatchesURL(c.URL) {
			err := threadex.Errorf(threadex.EWRONGSITE, "%s is not a %s URL", c.URL, deps.Profile.Name)
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			return err
		}
		if err := deps.Navigator.Navigate(deps.Ctx, c.URL); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			return err
		}
		if err := deps.Waiter.Wait(deps.Ctx, deps.Profile.SettleDelay); err != nil {
			return err
		}
	}

	res, err := deps.Exporter.ExportCurrent(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		if threadex.ErrorCode(err) == threadex.EWRONGSITE {
			fmt.Fprintln(deps.Stderr, "Hint: pass a thread URL, or attach to your browser with --control-url")
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %q to %s\n", res.Title, filepath.Join(deps.OutputDir, res.Filename))
	return nil
}
