package escape

import "runtime"

// Progress observes an evaluation. Step is called once after every completed
// iteration, with n running from 1 to maxIt. It has no effect on results.
type Progress interface {
	Step(n, maxIt int)
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(n, maxIt int)

func (p ProgressFunc) Step(n, maxIt int) {
	p(n, maxIt)
}

// An Option configures a single evaluation.
type Option func(*config)

// WithProgress registers an observer called after each iteration.
func WithProgress(p Progress) Option {
	return func(c *config) {
		c.progress = p
	}
}

// WithWorkers sets how many goroutines share the active values of a step.
// Zero or negative means runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithMinChunk sets the smallest number of active values handed to one
// goroutine. Steps with fewer active values than this run on the caller's
// goroutine.
func WithMinChunk(n int) Option {
	return func(c *config) {
		c.minChunk = n
	}
}

const defaultMinChunk = 4096

type config struct {
	progress Progress
	workers  int
	minChunk int
}

func newConfig(opts []Option) config {
	c := config{minChunk: defaultMinChunk}
	for _, opt := range opts {
		opt(&c)
	}

	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	if c.minChunk < 1 {
		c.minChunk = 1
	}
	return c
}

// chunks splits [0, n) into at most c.workers contiguous ranges of at least
// c.minChunk values each, except when n itself is smaller.
func (c config) chunks(n int) [][2]int {
	parts := n / c.minChunk
	if parts > c.workers {
		parts = c.workers
	}
	if parts < 1 {
		parts = 1
	}

	result := make([][2]int, parts)
	for i := range result {
		result[i] = [2]int{i * n / parts, (i + 1) * n / parts}
	}
	return result
}
