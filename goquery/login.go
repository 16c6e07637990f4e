package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/threadex"
)

var _ threadex.LoginDetector = (*LoginDetector)(nil)

// LoginDetector recognises a signed-in page by the profile's
// LoggedInSelectors: any match means the user is logged in.
type LoginDetector struct {
	markers cascadia.SelectorGroup
}

// NewLoginDetector compiles the profile's logged-in markers.
func NewLoginDetector(p *threadex.Profile) (*LoginDetector, error) {
	if p == nil {
		return nil, threadex.Errorf(threadex.EINVALID, "profile required")
	}
	markers, err := compileGroup(p.LoggedInSelectors...)
	if err != nil {
		return nil, err
	}
	if markers == nil {
		return nil, threadex.Errorf(threadex.EINVALID, "profile %q: no logged-in selectors", p.Name)
	}
	return &LoginDetector{markers: markers}, nil
}

// LoggedIn reports whether any marker element is present in rawHTML.
func (d *LoginDetector) LoggedIn(rawHTML string) (bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return false, threadex.Errorf(threadex.EINVALID, "failed to parse HTML: %v", err)
	}
	return cascadia.Query(doc.Get(0), d.markers) != nil, nil
}
