package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	httpMode bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithHTTP selects the streamable HTTP transport instead of stdio.
func WithHTTP(enabled bool) Option {
	return func(a *application) {
		a.httpMode = enabled
	}
}
