package multisend

import (
	"go.uber.org/zap"
)

// Option configures an encode or decode operation.
type Option func(*config)

// config holds the settings shared by the codecs.
type config struct {
	coder    Coder
	logger   *zap.Logger
	decimals int
	abiJSON  string
	abiFunc  func() (string, error)
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		coder:    DefaultCoder(),
		logger:   zap.NewNop(),
		decimals: EtherDecimals,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithCoder replaces the ABI coder. A nil coder is ignored.
func WithCoder(coder Coder) Option {
	return func(c *config) {
		if coder != nil {
			c.coder = coder
		}
	}
}

// WithLogger sets the logger used for debug tracing. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDecimals sets the token decimals used when classifying a fungible
// token transfer. Default is 18. Classify rejects values outside
// 0..MaxDecimals.
func WithDecimals(decimals int) Option {
	return func(c *config) {
		c.decimals = decimals
	}
}

// WithABI supplies the JSON ABI of the call's destination contract.
func WithABI(abiJSON string) Option {
	return func(c *config) {
		c.abiJSON = abiJSON
	}
}

// WithABIFunc supplies a producer for the destination's JSON ABI. It is only
// invoked when classification reaches the contract call rule, and only if no
// ABI was given with WithABI.
func WithABIFunc(fn func() (string, error)) Option {
	return func(c *config) {
		c.abiFunc = fn
	}
}

// resolveABI returns the configured ABI JSON, calling the producer if needed.
func (c *config) resolveABI() (string, error) {
	if c.abiJSON != "" || c.abiFunc == nil {
		return c.abiJSON, nil
	}
	return c.abiFunc()
}
