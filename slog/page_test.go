package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/threadex"
	"github.com/fwojciec/threadex/mock"
	tslog "github.com/fwojciec/threadex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingNavigator_Navigate(t *testing.T) {
	t.Parallel()

	t.Run("logs url and duration", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Navigator{
			NavigateFn: func(context.Context, string) error { return nil },
		}

		err := tslog.NewLoggingNavigator(inner, logger).Navigate(context.Background(), "https://www.perplexity.ai/library")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=navigate")
		assert.Contains(t, output, "url=https://www.perplexity.ai/library")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Navigator{
			NavigateFn: func(context.Context, string) error { return errors.New("net error") },
		}

		err := tslog.NewLoggingNavigator(inner, logger).Navigate(context.Background(), "https://www.perplexity.ai/library")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="net error"`)
	})
}

func TestLoggingPageSource(t *testing.T) {
	t.Parallel()

	t.Run("logs html size", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.PageSource{
			HTMLFn: func(context.Context) (string, error) { return "<html></html>", nil },
		}

		html, err := tslog.NewLoggingPageSource(inner, logger).HTML(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Contains(t, buf.String(), `msg="page html"`)
		assert.Contains(t, buf.String(), "bytes=13")
	})

	t.Run("logs url only on failure", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		calls := 0
		inner := &mock.PageSource{
			URLFn: func(context.Context) (string, error) {
				calls++
				if calls == 1 {
					return "https://www.perplexity.ai/search/a", nil
				}
				return "", errors.New("target closed")
			},
		}
		source := tslog.NewLoggingPageSource(inner, logger)

		url, err := source.URL(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "https://www.perplexity.ai/search/a", url)
		assert.Empty(t, buf.String())

		_, err = source.URL(context.Background())
		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="target closed"`)
	})
}

func TestLoggingProbe_Probe(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	inner := &mock.PageProbe{
		ProbeFn: func(context.Context) ([]threadex.ThreadRef, error) {
			return []threadex.ThreadRef{{URL: "a", Title: "A"}, {URL: "b", Title: "B"}}, nil
		},
	}

	refs, err := tslog.NewLoggingProbe(inner, logger).Probe(context.Background())

	require.NoError(t, err)
	assert.Len(t, refs, 2)
	assert.Contains(t, buf.String(), "msg=probe")
	assert.Contains(t, buf.String(), "count=2")
}

func TestLoggingAction_Advance(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	inner := &mock.PageAction{
		AdvanceFn: func(context.Context) error { return errors.New("detached") },
	}

	err := tslog.NewLoggingAction(inner, logger).Advance(context.Background())

	require.Error(t, err)
	assert.Contains(t, buf.String(), "msg=advance")
	assert.Contains(t, buf.String(), "err=detached")
}

func TestLoggingExtractor_ExtractThread(t *testing.T) {
	t.Parallel()

	t.Run("logs title and content size", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.ContentExtractor{
			ExtractThreadFn: func(context.Context) (*threadex.Thread, error) {
				return &threadex.Thread{Title: "Tides", URL: "https://www.perplexity.ai/search/t", Content: "12345"}, nil
			},
		}

		thread, err := tslog.NewLoggingExtractor(inner, logger).ExtractThread(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "Tides", thread.Title)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "title=Tides")
		assert.Contains(t, output, "bytes=5")
	})

	t.Run("logs error without thread", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.ContentExtractor{
			ExtractThreadFn: func(context.Context) (*threadex.Thread, error) {
				return nil, errors.New("boom")
			},
		}

		_, err := tslog.NewLoggingExtractor(inner, logger).ExtractThread(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=boom")
	})
}

func TestLoggingLoginProbe_CheckLogin(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	inner := &mock.LoginProbe{
		CheckLoginFn: func(context.Context) (bool, error) { return true, nil },
	}

	ok, err := tslog.NewLoggingLoginProbe(inner, logger).CheckLogin(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), `msg="check login"`)
	assert.Contains(t, buf.String(), "logged_in=true")
}
