package threadex

import (
	"net/url"
	"sort"
	"strings"
	"time"
)

// DefaultProfileName names the built-in site profile.
const DefaultProfileName = "perplexity"

// Profile describes a site: where its thread library lives, how thread
// links and thread content are recognised in the DOM, and how patiently
// the library is scrolled. Selector lists are CSS selector groups.
type Profile struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`

	// ListingPath is the path of the lazily loaded thread library.
	ListingPath string `yaml:"listing_path"`

	// ThreadPaths are substrings an href must contain to be a thread link.
	ThreadPaths []string `yaml:"thread_paths"`

	// ThreadLinkSelectors are unioned to find candidate thread links.
	ThreadLinkSelectors []string `yaml:"thread_link_selectors"`

	// LinkTitleSelector finds a nested title element inside a thread link.
	LinkTitleSelector string `yaml:"link_title_selector"`

	TitleSelector    string   `yaml:"title_selector"`
	TitleSuffix      string   `yaml:"title_suffix"`
	ContentSelectors []string `yaml:"content_selectors"`
	MainSelectors    []string `yaml:"main_selectors"`

	// MinSectionLength drops content sections shorter than this many runes.
	MinSectionLength int `yaml:"min_section_length"`

	// ScrollSelectors are containers scrolled to their end on each advance.
	ScrollSelectors []string `yaml:"scroll_selectors"`

	MaxRounds         int           `yaml:"max_rounds"`
	IdleRounds        int           `yaml:"idle_rounds"`
	ScrollInterval    time.Duration `yaml:"scroll_interval"`
	ListingDelay      time.Duration `yaml:"listing_delay"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	SettleDelay       time.Duration `yaml:"settle_delay"`
	ItemDelay         time.Duration `yaml:"item_delay"`

	// SkipStalePages skips a thread whose content is identical to the
	// previous one, for sites that keep showing the old page after navigation.
	SkipStalePages bool `yaml:"skip_stale_pages"`

	// LoggedInSelectors match elements only shown to a signed-in user.
	LoggedInSelectors []string `yaml:"logged_in_selectors"`
}

// DefaultProfile returns the built-in Perplexity profile.
func DefaultProfile() *Profile {
	return &Profile{
		Name:        DefaultProfileName,
		BaseURL:     "https://www.perplexity.ai",
		ListingPath: "/library",
		ThreadPaths: []string{"/search/", "/thread/"},
		ThreadLinkSelectors: []string{
			`a[href*="/search/"]`,
			`a[href*="/thread/"]`,
			`[data-testid*="thread"] a`,
			`[class*="thread"] a[href]`,
			`[class*="library"] a[href*="/search"]`,
		},
		LinkTitleSelector: `[class*="title"]`,
		TitleSelector:     `h1, [class*="title"]`,
		TitleSuffix:       " - Perplexity",
		ContentSelectors: []string{
			`[class*="prose"]`,
			`[class*="answer"]`,
			`[class*="response"]`,
			`[class*="query"]`,
			`[class*="question"]`,
		},
		MainSelectors: []string{
			`main`,
			`[role="main"]`,
			`article`,
			`[class*="thread"]`,
			`[class*="conversation"]`,
		},
		MinSectionLength: 10,
		ScrollSelectors: []string{
			`[class*="scroll"]`,
			`[class*="list"]`,
			`main`,
			`[role="main"]`,
		},
		LoggedInSelectors: []string{
			`[data-testid="user-menu"]`,
			`button[aria-label*="profile"]`,
			`a[href="/library"]`,
			`[class*="avatar"]`,
			`[class*="user"]`,
		},
		MaxRounds:         100,
		IdleRounds:        5,
		ScrollInterval:    1500 * time.Millisecond,
		ListingDelay:      2 * time.Second,
		NavigationTimeout: 10 * time.Second,
		SettleDelay:       1500 * time.Millisecond,
		ItemDelay:         500 * time.Millisecond,
	}
}

// Validate returns an error if the profile cannot drive an export.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "profile name required")
	}
	if p.BaseURL == "" {
		return Errorf(EINVALID, "profile %q: base URL required", p.Name)
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Errorf(EINVALID, "profile %q: invalid base URL %q", p.Name, p.BaseURL)
	}
	if len(p.ThreadPaths) == 0 {
		return Errorf(EINVALID, "profile %q: at least one thread path required", p.Name)
	}
	if len(p.ThreadLinkSelectors) == 0 {
		return Errorf(EINVALID, "profile %q: at least one thread link selector required", p.Name)
	}
	if p.MaxRounds <= 0 {
		return Errorf(EINVALID, "profile %q: max rounds must be positive", p.Name)
	}
	if p.IdleRounds <= 0 {
		return Errorf(EINVALID, "profile %q: idle rounds must be positive", p.Name)
	}
	if p.NavigationTimeout <= 0 {
		return Errorf(EINVALID, "profile %q: navigation timeout must be positive", p.Name)
	}
	return nil
}

// Host returns the host name of the profile's base URL.
func (p *Profile) Host() string {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// ListingURL returns the absolute URL of the thread library.
func (p *Profile) ListingURL() string {
	return strings.TrimSuffix(p.BaseURL, "/") + "/" + strings.TrimPrefix(p.ListingPath, "/")
}

// MatchesURL reports whether rawURL belongs to the profile's site: its host
// equals the profile host's registrable part or is a subdomain of it.
// "perplexity.ai" and "www.perplexity.ai" both match a www base URL.
func (p *Profile) MatchesURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	site := strings.ToLower(strings.TrimPrefix(p.Host(), "www."))
	if host == "" || site == "" {
		return false
	}
	return host == site || strings.HasSuffix(host, "."+site)
}

// IsThreadPath reports whether href contains one of the profile's thread paths.
func (p *Profile) IsThreadPath(href string) bool {
	for _, path := range p.ThreadPaths {
		if strings.Contains(href, path) {
			return true
		}
	}
	return false
}

// ProfileRegistry holds site profiles by name.
type ProfileRegistry struct {
	profiles map[string]*Profile
}

// NewProfileRegistry returns a registry seeded with DefaultProfile.
func NewProfileRegistry() *ProfileRegistry {
	r := &ProfileRegistry{profiles: make(map[string]*Profile)}
	r.Register(DefaultProfile())
	return r
}

// Register adds p, replacing any profile with the same name.
func (r *ProfileRegistry) Register(p *Profile) {
	r.profiles[p.Name] = p
}

// Get returns the named profile. Returns ENOTFOUND if it is not registered.
func (r *ProfileRegistry) Get(name string) (*Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return nil, Errorf(ENOTFOUND, "profile %q not found", name)
	}
	return p, nil
}

// ForURL returns the first profile, by name, whose site matches rawURL.
// The bool result is false if none matches.
func (r *ProfileRegistry) ForURL(rawURL string) (*Profile, bool) {
	for _, name := range r.List() {
		if p := r.profiles[name]; p.MatchesURL(rawURL) {
			return p, true
		}
	}
	return nil, false
}

// List returns the registered profile names in sorted order.
func (r *ProfileRegistry) List() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
