package main

import (
	"fmt"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if err := deps.Navigator.Navigate(deps.Ctx, deps.Profile.ListingURL()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	if err := deps.Waiter.Wait(deps.Ctx, deps.Profile.ListingDelay); err != nil {
		return err
	}

	res, err := deps.Collector.Collect(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	if len(res.Threads) == 0 {
		fmt.Fprintln(deps.Stdout, "No threads found. Use 'threadex login' if you are not logged in.")
		return nil
	}

	for i, ref := range res.Threads {
		fmt.Fprintf(deps.Stdout, "%4d  %s\n      %s\n", i+1, ref.Title, ref.URL)
	}
	fmt.Fprintf(deps.Stdout, "%d threads (%d rounds, stopped: %s)\n", len(res.Threads), res.Rounds, res.Stop)
	return nil
}
