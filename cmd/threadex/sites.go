package main

import (
	"fmt"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	for _, name := range deps.Profiles.List() {
		p, err := deps.Profiles.Get(name)
		if err != nil {
			return err
		}
		marker := " "
		if deps.Profile != nil && p.Name == deps.Profile.Name {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %s  %s\n", marker, p.Name, p.ListingURL())
	}
	return nil
}
