package main_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/threadex"
	main "github.com/fwojciec/threadex/cmd/threadex"
	"github.com/fwojciec/threadex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("exports every thread and reports progress", func(t *testing.T) {
		t.Parallel()

		tab := newBrowserTab("https://www.perplexity.ai/")
		tab.addThread("https://www.perplexity.ai/search/a", "First", "Answer one")
		tab.addThread("https://www.perplexity.ai/search/b", "Second", "Answer two")
		env := newTestEnv(t, tab)

		err := (&main.AllCmd{}).Run(env.deps)

		require.NoError(t, err)
		assert.Contains(t, tab.saved, "0001_First.md")
		assert.Contains(t, tab.saved, "0002_Second.md")
		assert.Contains(t, tab.saved, threadex.IndexFilename)

		output := env.stdout.String()
		assert.Contains(t, output, "Collecting threads from https://www.perplexity.ai/library\n")
		assert.Contains(t, output, "  round 1: 2 threads (+2)\n")
		assert.Contains(t, output, "Found 2 threads\n")
		assert.Contains(t, output, "  [1/2] First\n")
		assert.Contains(t, output, "  [2/2] Second\n")
		assert.Contains(t, output, "Exported 2 of 2 threads to out\n")
		assert.Contains(t, output, "Index: "+filepath.Join("out", "_index.md")+"\n")
	})

	t.Run("reports skipped threads", func(t *testing.T) {
		t.Parallel()

		tab := newBrowserTab("https://www.perplexity.ai/")
		tab.addThread("https://www.perplexity.ai/search/a", "First", "Answer one")
		tab.addThread("https://www.perplexity.ai/search/b", "Empty", "")
		env := newTestEnv(t, tab)

		err := (&main.AllCmd{}).Run(env.deps)

		require.NoError(t, err)
		assert.Contains(t, env.stderr.String(), "  skip https://www.perplexity.ai/search/b: no content found")
		assert.Contains(t, env.stdout.String(), "Exported 1 of 2 threads to out (1 failed)\n")
	})

	t.Run("hints at login when the library is empty", func(t *testing.T) {
		t.Parallel()

		tab := newBrowserTab("https://www.perplexity.ai/")
		env := newTestEnv(t, tab)

		err := (&main.AllCmd{}).Run(env.deps)

		assert.Equal(t, threadex.ENOTFOUND, threadex.ErrorCode(err))
		assert.Contains(t, env.stderr.String(), "threadex login")
	})

	t.Run("prints foreign errors in full", func(t *testing.T) {
		t.Parallel()

		tab := newBrowserTab("https://www.perplexity.ai/")
		env := newTestEnv(t, tab)
		env.deps.Exporter.Navigator = &mock.Navigator{
			NavigateFn: func(context.Context, string) error {
				return assert.AnError
			},
		}

		err := (&main.AllCmd{}).Run(env.deps)

		require.Error(t, err)
		assert.Contains(t, env.stderr.String(), "error: navigate to library: "+assert.AnError.Error())
	})
}
