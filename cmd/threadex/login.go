package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/threadex"
)

// Run executes the login command. Without logged-in markers in the profile
// the login state cannot be checked and pressing Enter ends the command.
func (c *LoginCmd) Run(deps *Dependencies) error {
	if err := deps.Navigator.Navigate(deps.Ctx, deps.Profile.BaseURL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	ok, err := c.loggedIn(deps)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(deps.Stdout, "Already logged in to %s\n", deps.Profile.BaseURL)
		fmt.Fprintf(deps.Stdout, "Browser profile saved in %s\n", deps.UserDataDir)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Log in to %s in the browser window, then press Enter here.\n", deps.Profile.BaseURL)

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(deps.Stdin).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		done <- err
	}()

	select {
	case <-deps.Ctx.Done():
		return deps.Ctx.Err()
	case err := <-done:
		if err != nil {
			return err
		}
	}

	if deps.Login == nil {
		fmt.Fprintf(deps.Stdout, "Browser profile saved in %s\n", deps.UserDataDir)
		return nil
	}
	ok, err = c.loggedIn(deps)
	if err != nil {
		return err
	}
	if !ok {
		err := threadex.Errorf(threadex.ENOTFOUND, "no signed-in session found on %s", deps.Profile.BaseURL)
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		fmt.Fprintln(deps.Stderr, "Hint: finish signing in before pressing Enter, then run 'threadex login' again")
		return err
	}

	fmt.Fprintln(deps.Stdout, "Logged in.")
	fmt.Fprintf(deps.Stdout, "Browser profile saved in %s\n", deps.UserDataDir)
	return nil
}

// loggedIn lets the page settle and checks it for a signed-in session.
func (c *LoginCmd) loggedIn(deps *Dependencies) (bool, error) {
	if deps.Login == nil {
		return false, nil
	}
	if err := deps.Waiter.Wait(deps.Ctx, deps.Profile.SettleDelay); err != nil {
		return false, err
	}
	ok, err := deps.Login.CheckLogin(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return false, err
	}
	return ok, nil
}
