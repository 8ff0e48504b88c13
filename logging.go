package features

import "time"

// ResolveLogEvent describes one lookup attempt for logging.
type ResolveLogEvent struct {
	Key      string
	Kind     Kind
	Tier     Tier
	Duration time.Duration
	Found    bool
	Err      error
}

// ResolveLogger records resolver events.
type ResolveLogger interface {
	LogResolve(ResolveLogEvent)
}

// ResolveLoggerFunc adapts a function to ResolveLogger.
type ResolveLoggerFunc func(ResolveLogEvent)

// LogResolve implements ResolveLogger.
func (f ResolveLoggerFunc) LogResolve(event ResolveLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopResolveLogger struct{}

func (noopResolveLogger) LogResolve(ResolveLogEvent) {}

// WithResolveLogger attaches a resolve logger to the Manager.
func WithResolveLogger(logger ResolveLogger) Option {
	return func(cfg *managerConfig) {
		if logger == nil {
			cfg.logger = noopResolveLogger{}
			return
		}
		cfg.logger = logger
	}
}
