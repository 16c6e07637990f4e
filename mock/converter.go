package mock

import "github.com/fwojciec/threadex"

var _ threadex.Converter = (*Converter)(nil)

// Converter is a mock implementation of threadex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
