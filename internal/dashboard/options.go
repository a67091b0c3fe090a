package dashboard

import "github.com/okian/studyscore/pkg/logger"

// Option configures the dashboard handlers.
type Option func(*options)

type options struct {
	log logger.Logger
}

func defaultOptions() options {
	return options{log: logger.NewNop()}
}

// WithLogger sets the logger for a handler.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
