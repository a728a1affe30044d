package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/okian/collections/pkg/logger"
)

// Outcome labels for collection operation metrics.
const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
)

// Stats is the read model served on /stats and /healthz.
type Stats struct {
	Collection string `json:"collection"`
	Records    int    `json:"records"`
	NextID     int    `json:"next_id"`
}

type options struct {
	logger   logger.Logger
	validate *validator.Validate
}

// Option applies a configuration option to a service.
type Option func(*options)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithValidator shares a validator instance; it caches struct metadata.
func WithValidator(v *validator.Validate) Option {
	return func(o *options) {
		if v != nil {
			o.validate = v
		}
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get()
	}
	if o.validate == nil {
		o.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return o
}
