package internal

import "github.com/starford/othala/internal/notify"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	notifier notify.Notifier
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithNotifier registers an extra notice sink alongside the built-in log and
// SSE sinks. Embedding hosts use this to surface notices in their own UI.
func WithNotifier(n notify.Notifier) Option {
	return func(a *application) {
		a.notifier = n
	}
}
