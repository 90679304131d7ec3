package solar

import (
	"github.com/checkmarble/upstage-nodes"
)

type opt func(*Chat)

// WithModel selects the Solar model. If not specified, solar-mini is used.
func WithModel(model string) opt {
	return func(c *Chat) {
		c.options.Model = model
	}
}

// WithOptions sets the default sampling options of every generation.
func WithOptions(opts upstage.GenerateOptions) opt {
	return func(c *Chat) {
		model := c.options.Model
		c.options = opts

		if c.options.Model == "" {
			c.options.Model = model
		}
	}
}
