package beans

import (
	"github.com/sirupsen/logrus"
)

// Option configures a Container.
type Option interface {
	apply(*Container)
}

// optionFunc adapts a function to Option.
type optionFunc func(*Container)

func (f optionFunc) apply(c *Container) {
	f(c)
}

// WithLogger sets the logger the container reports build progress and
// failures to. The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return optionFunc(func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithID overrides the generated container id used in log fields.
func WithID(id string) Option {
	return optionFunc(func(c *Container) {
		if id != "" {
			c.id = id
		}
	})
}
