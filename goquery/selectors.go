package goquery

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/threadex"
)

// compileGroup compiles CSS selectors into a single group that matches in
// document order. An empty list compiles to nil.
func compileGroup(selectors ...string) (cascadia.SelectorGroup, error) {
	var parts []string
	for _, s := range selectors {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return nil, nil
	}
	group, err := cascadia.ParseGroup(strings.Join(parts, ", "))
	if err != nil {
		return nil, threadex.Errorf(threadex.EINVALID, "invalid selector %q: %v", strings.Join(parts, ", "), err)
	}
	return group, nil
}

// compileEach compiles every selector separately, keeping their order.
func compileEach(selectors []string) ([]cascadia.SelectorGroup, error) {
	groups := make([]cascadia.SelectorGroup, 0, len(selectors))
	for _, s := range selectors {
		g, err := compileGroup(s)
		if err != nil {
			return nil, err
		}
		if g != nil {
			groups = append(groups, g)
		}
	}
	return groups, nil
}
