package remap

import "go.uber.org/zap"

type options struct {
	logger   *zap.Logger
	implicit bool
	name     string
}

func defaultOptions() options {
	return options{logger: zap.NewNop(), implicit: true}
}

// Option configures a Builder.
type Option func(*options)

// WithLogger sets the logger for configuration and mapping debug output.
// The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithImplicitMapping enables or disables copying same-named compatible
// fields that no rule covers. It is enabled by default.
func WithImplicitMapping(enabled bool) Option {
	return func(o *options) {
		o.implicit = enabled
	}
}

// WithName sets the mapping name used in logs and descriptions. It defaults
// to "Source->Destination".
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

type ruleOptions struct {
	skipNil bool
}

// RuleOption configures a single rule.
type RuleOption func(*ruleOptions)

// SkipWhenNil skips a Replace rule when the source value is nil instead of
// passing nil to the function.
func SkipWhenNil() RuleOption {
	return func(o *ruleOptions) {
		o.skipNil = true
	}
}
