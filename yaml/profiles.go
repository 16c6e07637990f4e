// Package yaml loads site profiles from YAML files.
//
// A profiles file lists profiles by name. A profile whose name is already
// registered overrides only the keys it sets; a new profile starts from the
// profile named by "extends", or from scratch:
//
//	profiles:
//	  - name: perplexity
//	    max_rounds: 200
//	    scroll_interval: 2s
//	  - name: perplexity-eu
//	    extends: perplexity
//	    base_url: https://eu.perplexity.ai
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/threadex"
	"gopkg.in/yaml.v3"
)

// file is the top-level structure of a profiles file.
type file struct {
	Profiles []yaml.Node `yaml:"profiles"`
}

// header holds the keys needed to pick a profile's starting point.
type header struct {
	Name    string `yaml:"name"`
	Extends string `yaml:"extends"`
}

// LoadProfiles reads the profiles file at path into registry and returns the
// names of the profiles it defined, in file order.
func LoadProfiles(path string, registry *threadex.ProfileRegistry) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, threadex.Errorf(threadex.ENOTFOUND, "profiles file %s not found", path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to open profiles file: %w", err)
	}
	defer f.Close()

	names, err := DecodeProfiles(f, registry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}

// DecodeProfiles reads profiles from r into registry. Every profile is
// validated before any is registered, so a bad file leaves registry unchanged.
func DecodeProfiles(r io.Reader, registry *threadex.ProfileRegistry) ([]string, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, threadex.Errorf(threadex.EINVALID, "failed to parse profiles: %v", err)
	}

	var profiles []*threadex.Profile
	defined := make(map[string]*threadex.Profile)
	for i := range doc.Profiles {
		node := &doc.Profiles[i]

		var h header
		if err := node.Decode(&h); err != nil {
			return nil, threadex.Errorf(threadex.EINVALID, "profile %d: %v", i+1, err)
		}
		if h.Name == "" {
			return nil, threadex.Errorf(threadex.EINVALID, "profile %d: name required", i+1)
		}

		p, err := base(h, defined, registry)
		if err != nil {
			return nil, err
		}
		if err := node.Decode(p); err != nil {
			return nil, threadex.Errorf(threadex.EINVALID, "profile %q: %v", h.Name, err)
		}
		p.Name = h.Name
		if err := p.Validate(); err != nil {
			return nil, err
		}

		defined[p.Name] = p
		profiles = append(profiles, p)
	}

	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		registry.Register(p)
		names = append(names, p.Name)
	}
	return names, nil
}

// base returns a copy of the profile that h starts from.
func base(h header, defined map[string]*threadex.Profile, registry *threadex.ProfileRegistry) (*threadex.Profile, error) {
	from := h.Name
	if h.Extends != "" {
		from = h.Extends
	}
	if p, ok := defined[from]; ok {
		cp := *p
		return &cp, nil
	}
	p, err := registry.Get(from)
	if err == nil {
		cp := *p
		return &cp, nil
	}
	if h.Extends != "" {
		return nil, threadex.Errorf(threadex.ENOTFOUND, "profile %q extends unknown profile %q", h.Name, h.Extends)
	}
	return scratch(), nil
}

// scratch returns an empty profile carrying the default limits and timings.
func scratch() *threadex.Profile {
	d := threadex.DefaultProfile()
	return &threadex.Profile{
		MinSectionLength:  d.MinSectionLength,
		MaxRounds:         d.MaxRounds,
		IdleRounds:        d.IdleRounds,
		ScrollInterval:    d.ScrollInterval,
		ListingDelay:      d.ListingDelay,
		NavigationTimeout: d.NavigationTimeout,
		SettleDelay:       d.SettleDelay,
		ItemDelay:         d.ItemDelay,
	}
}
