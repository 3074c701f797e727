package dhash

import "go.uber.org/zap"

type config struct {
	baseSize int
	hasher   Hasher
	logger   *zap.Logger
}

func defaultConfig() config {
	return config{
		baseSize: DefaultBaseSize,
		hasher:   PolynomialHasher{},
		logger:   zap.NewNop(),
	}
}

// Option configures a Table created by New.
type Option func(*config)

// WithBaseSize sets the capacity seed. The table rounds it up to the next
// prime and never goes below MinSize.
func WithBaseSize(n int) Option {
	return func(c *config) {
		c.baseSize = n
	}
}

// WithHasher replaces the default PolynomialHasher.
func WithHasher(h Hasher) Option {
	return func(c *config) {
		if h != nil {
			c.hasher = h
		}
	}
}

// WithLogger sets the logger used to trace resizes. A nil logger keeps the
// default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
