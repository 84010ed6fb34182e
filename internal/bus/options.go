package bus

import domainlogging "github.com/kodflow/msgbus/internal/domain/logging"

// buildOptions collects the values an Option can override, seeded from the
// BusConfig passed to New.
type buildOptions struct {
	separator           string
	maxQueueSize        int
	dedicatedThreadMode bool
	writers             []domainlogging.Writer
}

// Option customizes a MessageBus beyond what BusConfig expresses.
type Option func(*buildOptions)

// WithNameSeparator overrides the channel name separator.
func WithNameSeparator(sep string) Option {
	return func(o *buildOptions) { o.separator = sep }
}

// WithMaxQueueSize overrides the dispatcher queue bound.
func WithMaxQueueSize(n int) Option {
	return func(o *buildOptions) { o.maxQueueSize = n }
}

// WithDedicatedThreadMode overrides whether the bus starts a background
// dispatcher worker.
func WithDedicatedThreadMode(enabled bool) Option {
	return func(o *buildOptions) { o.dedicatedThreadMode = enabled }
}

// WithWriters overrides the internal log channel's writers, bypassing the
// console/file writers BusConfig.Logging would otherwise construct. Useful
// for tests that want to capture log output in memory.
func WithWriters(writers ...domainlogging.Writer) Option {
	return func(o *buildOptions) { o.writers = writers }
}
