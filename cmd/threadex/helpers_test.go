package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/threadex"
	main "github.com/fwojciec/threadex/cmd/threadex"
	"github.com/fwojciec/threadex/collect"
	"github.com/fwojciec/threadex/export"
	"github.com/fwojciec/threadex/mock"
)

// browserTab simulates the page the commands drive.
type browserTab struct {
	url         string
	library     []threadex.ThreadRef
	threads     map[string]string
	navigations []string
	saved       map[string]string
	// loginStates are returned by successive login checks; false once exhausted.
	loginStates []bool
	loginChecks int
}

func newBrowserTab(url string) *browserTab {
	return &browserTab{
		url:     url,
		threads: make(map[string]string),
		saved:   make(map[string]string),
	}
}

func (b *browserTab) addThread(url, title, content string) {
	b.library = append(b.library, threadex.ThreadRef{URL: url, Title: title})
	b.threads[url] = content
}

type testEnv struct {
	deps   *main.Dependencies
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T, tab *browserTab) *testEnv {
	t.Helper()

	profile := threadex.DefaultProfile()
	profile.ItemDelay = 0

	page := &mock.PageSource{
		URLFn: func(context.Context) (string, error) { return tab.url, nil },
	}
	navigator := &mock.Navigator{
		NavigateFn: func(_ context.Context, url string) error {
			tab.navigations = append(tab.navigations, url)
			tab.url = url
			return nil
		},
	}
	waiter := &mock.Waiter{
		WaitFn: func(context.Context, time.Duration) error { return nil },
	}
	probe := &mock.PageProbe{
		ProbeFn: func(context.Context) ([]threadex.ThreadRef, error) { return tab.library, nil },
	}
	action := &mock.PageAction{
		AdvanceFn: func(context.Context) error { return nil },
	}
	extractor := &mock.ContentExtractor{
		ExtractThreadFn: func(context.Context) (*threadex.Thread, error) {
			title := threadex.UntitledTitle
			for _, ref := range tab.library {
				if ref.URL == tab.url {
					title = ref.Title
				}
			}
			return &threadex.Thread{Title: title, URL: tab.url, Content: tab.threads[tab.url]}, nil
		},
	}

	collector := collect.NewCollector(probe, action, waiter)
	collector.Config = collect.ConfigFromProfile(profile)

	env := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	env.deps = &main.Dependencies{
		Ctx:         context.Background(),
		Stdout:      env.stdout,
		Stderr:      env.stderr,
		Stdin:       strings.NewReader("\n"),
		Profile:     profile,
		Profiles:    threadex.NewProfileRegistry(),
		OutputDir:   "out",
		UserDataDir: "/tmp/chrome",
		Navigator:   navigator,
		Login:       &mock.LoginProbe{
			CheckLoginFn: func(context.Context) (bool, error) {
				tab.loginChecks++
				if len(tab.loginStates) == 0 {
					return false, nil
				}
				ok := tab.loginStates[0]
				tab.loginStates = tab.loginStates[1:]
				return ok, nil
			},
		},
		Waiter:      waiter,
		Collector:   collector,
		Exporter: &export.Exporter{
			Profile:   profile,
			Page:      page,
			Navigator: navigator,
			Extractor: extractor,
			Probe:     probe,
			Action:    action,
			Waiter:    waiter,
			Store: &mock.ThreadStore{
				SaveFn: func(_ context.Context, filename, content string) error {
					tab.saved[filename] = content
					return nil
				},
			},
			Now: func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) },
		},
	}
	return env
}
