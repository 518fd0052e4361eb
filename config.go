package dynarray

import (
	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

const (
	// DefaultCapacity is the minimum capacity of a newly constructed array.
	// Small arrays start with this many slots to avoid reallocating on the
	// first few appends.
	DefaultCapacity = 42

	// GrowthFactor is the multiplier applied to capacity when an array grows.
	GrowthFactor = 2
)

// Config holds the allocation policy of an array.
type Config struct {
	// DefaultCapacity is the capacity floor applied at construction.
	DefaultCapacity int
	// GrowthFactor multiplies the capacity on growth. Must be at least 2.
	GrowthFactor int
	// MaxBytes, when non-zero and no Budget is given, caps the array's
	// buffer with a private Budget.
	MaxBytes uint64
}

// DefaultConfig returns the package defaults.
func DefaultConfig() Config {
	return Config{
		DefaultCapacity: DefaultCapacity,
		GrowthFactor:    GrowthFactor,
	}
}

// Validate checks the config.
func (c Config) Validate() error {
	if c.DefaultCapacity < 0 {
		return errors.Wrapf(ErrInvalidConfig, "default capacity %d is negative", c.DefaultCapacity)
	}
	if c.GrowthFactor < 2 {
		return errors.Wrapf(ErrInvalidConfig, "growth factor %d is below 2", c.GrowthFactor)
	}
	return nil
}

// CopyFunc duplicates an element. It is used when an array is cloned or
// assigned, and may fail.
type CopyFunc[T any] func(T) (T, error)

type options[T any] struct {
	cfg     Config
	budget  *Budget
	copyFn  CopyFunc[T]
	logger  log.Logger
	metrics *Metrics
}

// Option configures an Array.
type Option[T any] func(*options[T])

// WithConfig replaces the allocation policy.
func WithConfig[T any](cfg Config) Option[T] {
	return func(o *options[T]) { o.cfg = cfg }
}

// WithDefaultCapacity overrides the capacity floor.
func WithDefaultCapacity[T any](n int) Option[T] {
	return func(o *options[T]) { o.cfg.DefaultCapacity = n }
}

// WithGrowthFactor overrides the growth multiplier.
func WithGrowthFactor[T any](f int) Option[T] {
	return func(o *options[T]) { o.cfg.GrowthFactor = f }
}

// WithBudget charges the array's buffers to b.
func WithBudget[T any](b *Budget) Option[T] {
	return func(o *options[T]) { o.budget = b }
}

// WithCopyFunc sets the function used to duplicate elements on Clone and Assign.
func WithCopyFunc[T any](f CopyFunc[T]) Option[T] {
	return func(o *options[T]) { o.copyFn = f }
}

// WithLogger sets the logger used for growth and allocation failures.
func WithLogger[T any](l log.Logger) Option[T] {
	return func(o *options[T]) { o.logger = l }
}

// WithMetrics reports the array's allocations to m.
func WithMetrics[T any](m *Metrics) Option[T] {
	return func(o *options[T]) { o.metrics = m }
}

func buildOptions[T any](opts []Option[T]) (options[T], error) {
	o := options[T]{
		cfg:    DefaultConfig(),
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return o, err
	}
	if o.logger == nil {
		o.logger = log.NewNopLogger()
	}
	if o.budget == nil && o.cfg.MaxBytes > 0 {
		o.budget = NewBudget(o.cfg.MaxBytes, nil)
	}
	return o, nil
}
