package core

import "go.uber.org/zap"

// Option configures an Interceptor or a Stubba.
type Option func(*settings)

// WithLogger sets the logger used for debug events. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRestorationCheck turns the post-unstub method table comparison on or off.
// It is on by default and only applies to Stubba.
func WithRestorationCheck(enabled bool) Option {
	return func(s *settings) {
		s.verifyRestoration = enabled
	}
}

type settings struct {
	logger            *zap.Logger
	verifyRestoration bool
}

func newSettings(opts []Option) settings {
	result := settings{
		logger:            zap.NewNop(),
		verifyRestoration: true,
	}

	for _, opt := range opts {
		opt(&result)
	}

	return result
}
