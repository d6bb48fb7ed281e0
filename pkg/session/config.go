package session

// Config holds session configuration
type Config struct {
	// Name is the session cookie name (default: "sid")
	Name string `env:"SESSION_NAME" envDefault:"sid"`

	// Lifetime accepts seconds ("3600") or a relative phrase ("1 hour")
	Lifetime Lifetime `env:"SESSION_LIFETIME" envDefault:"1 hour"`

	Path   string `env:"SESSION_PATH"`
	Domain string `env:"SESSION_DOMAIN"`

	// Secure enables the Secure flag on the session cookie (recommended for production)
	Secure   bool `env:"SESSION_SECURE" envDefault:"false"`
	HTTPOnly bool `env:"SESSION_HTTP_ONLY" envDefault:"true"`

	CacheLimiter CacheLimiter `env:"SESSION_CACHE_LIMITER" envDefault:"nocache"`

	Namespace string `env:"SESSION_NAMESPACE" envDefault:"app"`

	AutoRefresh     bool `env:"SESSION_AUTO_REFRESH" envDefault:"true"`
	BindToIPAddress bool `env:"SESSION_BIND_IP" envDefault:"true"`
	BindToUserAgent bool `env:"SESSION_BIND_USER_AGENT" envDefault:"true"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	o := DefaultOptions()
	return Config{
		Name:            o.Name,
		Lifetime:        o.Lifetime,
		HTTPOnly:        o.HTTPOnly,
		CacheLimiter:    o.CacheLimiter,
		Namespace:       o.Namespace,
		AutoRefresh:     o.AutoRefresh,
		BindToIPAddress: o.BindToIPAddress,
		BindToUserAgent: o.BindToUserAgent,
	}
}

// Options converts the configuration into session options
func (c Config) Options() Options {
	return Options{
		Name:            c.Name,
		Lifetime:        c.Lifetime,
		Path:            c.Path,
		Domain:          c.Domain,
		Secure:          c.Secure,
		HTTPOnly:        c.HTTPOnly,
		CacheLimiter:    c.CacheLimiter,
		Namespace:       c.Namespace,
		AutoRefresh:     c.AutoRefresh,
		BindToIPAddress: c.BindToIPAddress,
		BindToUserAgent: c.BindToUserAgent,
	}
}

// NewFromConfig creates an inactive Session from the provided Config.
func NewFromConfig(store Store, cfg Config, opts ...Option) (*Session, error) {
	return New(store, cfg.Options(), opts...)
}
