package chash

import "fmt"

// DefaultLoadFactorLimit is the load factor, in percent, at which a table
// doubles its capacity.
const DefaultLoadFactorLimit = 80

type options struct {
	strategy Strategy
	hash     Hash
	limit    int
	logger   *Logger
	alloc    allocFunc
}

func defaultOptions() options {
	return options{
		strategy: LinearProbing,
		hash:     HashModulo,
		limit:    DefaultLoadFactorLimit,
		logger:   NoopLogger(),
		alloc:    makeSlots,
	}
}

func (o *options) validate() error {
	if !o.strategy.valid() {
		return fmt.Errorf("%w: strategy %d", ErrInvalidArgument, o.strategy)
	}
	if !o.hash.supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedHash, o.hash)
	}
	if o.limit < 1 || o.limit > 100 {
		return fmt.Errorf("%w: load factor limit %d not in [1, 100]", ErrInvalidArgument, o.limit)
	}
	return nil
}

// Option configures a Table.
type Option func(*options)

// WithStrategy selects the collision strategy. The default is LinearProbing.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithHash selects the hash strategy. The default is HashModulo.
func WithHash(h Hash) Option {
	return func(o *options) {
		o.hash = h
	}
}

// WithLoadFactorLimit sets the load factor percentage that triggers a
// resize after an insert. It must be in [1, 100].
func WithLoadFactorLimit(pct int) Option {
	return func(o *options) {
		o.limit = pct
	}
}

// WithLogger sets the logger. Pass nil to keep the no-op logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
