package threadex_test

import (
	"testing"

	"github.com/fwojciec/threadex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	t.Parallel()

	p := threadex.DefaultProfile()

	require.NoError(t, p.Validate())
	assert.Equal(t, "www.perplexity.ai", p.Host())
	assert.Equal(t, "https://www.perplexity.ai/library", p.ListingURL())
	assert.Equal(t, 10, p.MinSectionLength)
}

func TestProfile_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(p *threadex.Profile)
	}{
		{"missing name", func(p *threadex.Profile) { p.Name = "" }},
		{"missing base URL", func(p *threadex.Profile) { p.BaseURL = "" }},
		{"relative base URL", func(p *threadex.Profile) { p.BaseURL = "/library" }},
		{"non-http base URL", func(p *threadex.Profile) { p.BaseURL = "ftp://example.com" }},
		{"no thread paths", func(p *threadex.Profile) { p.ThreadPaths = nil }},
		{"no link selectors", func(p *threadex.Profile) { p.ThreadLinkSelectors = nil }},
		{"zero max rounds", func(p *threadex.Profile) { p.MaxRounds = 0 }},
		{"zero idle rounds", func(p *threadex.Profile) { p.IdleRounds = 0 }},
		{"zero navigation timeout", func(p *threadex.Profile) { p.NavigationTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := threadex.DefaultProfile()
			tt.modify(p)

			assert.Equal(t, threadex.EINVALID, threadex.ErrorCode(p.Validate()))
		})
	}
}

func TestProfile_MatchesURL(t *testing.T) {
	t.Parallel()

	p := threadex.DefaultProfile()

	assert.True(t, p.MatchesURL("https://www.perplexity.ai/search/abc"))
	assert.True(t, p.MatchesURL("https://perplexity.ai/search/abc"))
	assert.True(t, p.MatchesURL("https://WWW.Perplexity.ai/"))
	assert.False(t, p.MatchesURL("https://notperplexity.ai/search/abc"))
	assert.False(t, p.MatchesURL("https://example.com/?q=perplexity.ai"))
	assert.False(t, p.MatchesURL("about:blank"))
}

func TestProfile_IsThreadPath(t *testing.T) {
	t.Parallel()

	p := threadex.DefaultProfile()

	assert.True(t, p.IsThreadPath("/search/how-do-tides-work"))
	assert.True(t, p.IsThreadPath("https://www.perplexity.ai/thread/1"))
	assert.False(t, p.IsThreadPath("/settings"))
}

func TestProfileRegistry(t *testing.T) {
	t.Parallel()

	t.Run("is seeded with the default profile", func(t *testing.T) {
		t.Parallel()

		r := threadex.NewProfileRegistry()

		p, err := r.Get(threadex.DefaultProfileName)
		require.NoError(t, err)
		assert.Equal(t, "https://www.perplexity.ai", p.BaseURL)
	})

	t.Run("returns not found for unknown profiles", func(t *testing.T) {
		t.Parallel()

		r := threadex.NewProfileRegistry()

		_, err := r.Get("nope")

		assert.Equal(t, threadex.ENOTFOUND, threadex.ErrorCode(err))
	})

	t.Run("finds profiles by URL", func(t *testing.T) {
		t.Parallel()

		r := threadex.NewProfileRegistry()
		other := threadex.DefaultProfile()
		other.Name = "chat"
		other.BaseURL = "https://chat.example.com"
		r.Register(other)

		p, ok := r.ForURL("https://chat.example.com/search/1")
		require.True(t, ok)
		assert.Equal(t, "chat", p.Name)

		_, ok = r.ForURL("https://unknown.example.org/")
		assert.False(t, ok)
		assert.Equal(t, []string{"chat", "perplexity"}, r.List())
	})
}
