package threadex_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/threadex"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"strips reserved characters", `a/b:c*d`, "abcd"},
		{"strips every reserved character", `<>:"/\|?*x`, "x"},
		{"replaces whitespace runs", "How  do\ttides\nwork", "How_do_tides_work"},
		{"keeps unicode", "Café résumé", "Café_résumé"},
		{"empty becomes untitled", "", "untitled"},
		{"only reserved becomes untitled", "???", "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, threadex.SanitizeFilename(tt.title))
		})
	}

	t.Run("truncates to 100 runes", func(t *testing.T) {
		t.Parallel()

		got := threadex.SanitizeFilename(strings.Repeat("é", 300))

		assert.Equal(t, strings.Repeat("é", threadex.MaxFilenameLength), got)
	})
}

func TestBulkFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0001_First_thread.md", threadex.BulkFilename(1, "First thread"))
	assert.Equal(t, "0042_untitled.md", threadex.BulkFilename(42, ""))
	assert.Equal(t, "12345_x.md", threadex.BulkFilename(12345, "x"))
}

func TestSingleFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "What_is_Go.md", threadex.SingleFilename("What is Go?"))
}

func TestFormatMarkdown(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)

	t.Run("renders header and content", func(t *testing.T) {
		t.Parallel()

		got := threadex.FormatMarkdown("Tides", "https://www.perplexity.ai/search/tides", "The Moon.", date)

		want := "# Tides\n\n" +
			"**URL:** https://www.perplexity.ai/search/tides\n" +
			"**Export date:** 2024-03-05\n\n" +
			"---\n\n" +
			"The Moon.\n"
		assert.Equal(t, want, got)
	})

	t.Run("uses the UTC calendar day", func(t *testing.T) {
		t.Parallel()

		local := date.In(time.FixedZone("east", 3*60*60))

		got := threadex.FormatMarkdown("t", "u", "c", local)

		assert.Contains(t, got, "**Export date:** 2024-03-05\n")
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		a := threadex.FormatMarkdown("t", "u", "c", date)
		b := threadex.FormatMarkdown("t", "u", "c", date)

		assert.Equal(t, a, b)
	})
}

func TestFormatIndex(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("lists entries in order", func(t *testing.T) {
		t.Parallel()

		got := threadex.FormatIndex([]threadex.IndexEntry{
			{Title: "A", Filename: "0001_A.md"},
			{Title: "C", Filename: "0003_C.md"},
		}, date)

		want := "# Thread index\n\n" +
			"**Export date:** 2024-03-05\n" +
			"**Threads:** 2\n\n" +
			"---\n\n" +
			"1. [A](0001_A.md)\n" +
			"2. [C](0003_C.md)\n"
		assert.Equal(t, want, got)
	})

	t.Run("handles no entries", func(t *testing.T) {
		t.Parallel()

		got := threadex.FormatIndex(nil, date)

		assert.Contains(t, got, "**Threads:** 0\n")
		assert.True(t, strings.HasSuffix(got, "---\n\n"))
	})
}
