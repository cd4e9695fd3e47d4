package lr

import (
	"github.com/npillmayer/schuko/gconf"
)

// DefaultMaxIterations is the default cap on passes of fixed-point computations.
const DefaultMaxIterations = 10000

// Option configures grammar analysis.
type Option func(*config)

type config struct {
	maxIterations int
}

// MaxIterations sets the maximum number of passes for the FIRST and FOLLOW
// fixed-point computations. Values < 1 are ignored.
func MaxIterations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// newConfig starts with the defaults, overrides them with global
// configuration key "lr.max-iterations", and finally applies opts.
func newConfig(opts []Option) *config {
	c := &config{maxIterations: DefaultMaxIterations}
	if gconf.IsSet("lr.max-iterations") {
		if n := gconf.GetInt("lr.max-iterations"); n > 0 {
			c.maxIterations = n
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
