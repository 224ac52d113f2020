package paseto

// tokenConfig holds per-token generation settings.
type tokenConfig struct {
	footer []byte
}

// Option configures token generation.
type Option func(*tokenConfig)

// WithFooter attaches an authenticated but unencrypted footer to the
// token, carried as the optional fourth wire field. An empty footer is
// equivalent to omitting the option.
func WithFooter(footer []byte) Option {
	return func(c *tokenConfig) {
		c.footer = footer
	}
}
