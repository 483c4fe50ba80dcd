package scaffold

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/config"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/templates"
)

func defaultOptions() *options {
	return &options{
		logger:  log.New(io.Discard),
		lenient: false,
		locator: nil,
		matrix:  nil,

		maxWorkers: 1,
	}
}

type options struct {
	logger  *log.Logger
	lenient bool
	locator *templates.Locator
	matrix  *config.Matrix

	maxWorkers int
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}

	if o.locator == nil {
		o.locator = templates.NewLocator()
	}
	return o
}

// validate checks sel against the injected matrix, or the default one.
func (o *options) validate(sel config.Selection) error {
	if o.matrix == nil {
		return config.ValidateCombination(sel)
	}
	return o.matrix.Validate(sel)
}

type Option func(*options)

func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLenient skips templates that fail to render instead of aborting.
func WithLenient(lenient bool) Option {
	return func(o *options) {
		o.lenient = lenient
	}
}

func WithLocator(l *templates.Locator) Option {
	return func(o *options) {
		o.locator = l
	}
}

// WithMatrix replaces the compatibility matrix used to validate selections.
func WithMatrix(m *config.Matrix) Option {
	return func(o *options) {
		o.matrix = m
	}
}

// WithMaxWorkers caps how many layers are planned at once. The default of one
// plans layers in order; zero means no limit. Writes are always sequential.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		o.maxWorkers = n
	}
}
