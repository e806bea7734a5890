// Package facade binds a shared bbcode.Parser into a container under a
// fixed lookup key.
package facade

import (
	"fmt"

	"github.com/yaklabco/gobbcode/pkg/bbcode"
	"github.com/yaklabco/gobbcode/pkg/container"
)

// Accessor is the key the shared parser is bound under.
const Accessor = "bbcode"

// Setup customizes the shared parser once, right after construction.
type Setup func(*bbcode.Parser) error

// Register binds a lazily built parser under Accessor in c.
// The setups run in order the first time the parser is resolved.
func Register(c *container.Container, setups ...Setup) {
	c.Bind(Accessor, func() (any, error) {
		parser := bbcode.New()
		for _, setup := range setups {
			if err := setup(parser); err != nil {
				return nil, err
			}
		}
		return parser, nil
	})
}

// Resolve returns the parser bound in c.
func Resolve(c *container.Container) (*bbcode.Parser, error) {
	value, err := c.Resolve(Accessor)
	if err != nil {
		return nil, err
	}
	parser, ok := value.(*bbcode.Parser)
	if !ok {
		return nil, fmt.Errorf("binding %q holds %T, not *bbcode.Parser", Accessor, value)
	}
	return parser, nil
}

// Parser returns the shared parser from container.Default, binding a
// default one first if nothing is bound yet.
func Parser() *bbcode.Parser {
	if !container.Default.Has(Accessor) {
		Register(container.Default)
	}
	parser, err := Resolve(container.Default)
	if err != nil {
		panic(err)
	}
	return parser
}
