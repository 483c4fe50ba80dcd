package render

import (
	"io"

	"github.com/charmbracelet/log"
)

func defaultOptions() *options {
	return &options{
		logger:  log.New(io.Discard),
		lenient: false,
	}
}

type options struct {
	logger  *log.Logger
	lenient bool
	layer   string
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}

	return o
}

type Option func(*options)

func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLenient skips template files that fail to render instead of failing
// the whole plan. Skipped files are logged as warnings.
func WithLenient(lenient bool) Option {
	return func(o *options) {
		o.lenient = lenient
	}
}

// WithLayer names the template layer being planned, recorded on each claim.
func WithLayer(name string) Option {
	return func(o *options) {
		o.layer = name
	}
}
