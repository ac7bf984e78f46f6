package contracts

import "time"

// ClientOptions defines the configuration options for the controller client.
type ClientOptions struct {
	Logger           Logger        // Logger for events and errors.
	LogLevel         LogLevel      // Level of logging to use.
	Transport        Transport     // Wire transport; a default is created when nil.
	PortPattern      string        // Substring matched against MIDI port names.
	FeedbackDuration time.Duration // How long a pressed button's LED stays lit.
	DisableFeedback  bool          // Turns off per-button LED feedback entirely.
	QueueSize        int           // Inbound frame queue depth.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithTransport sets the wire transport, replacing the default device-backed
// one. Tests and embedders use this to supply in-memory transports.
func WithTransport(t Transport) Option {
	return func(opts *ClientOptions) {
		opts.Transport = t
	}
}

// WithPortPattern sets the substring used to locate the device's MIDI ports.
func WithPortPattern(pattern string) Option {
	return func(opts *ClientOptions) {
		opts.PortPattern = pattern
	}
}

// WithFeedbackDuration sets how long button-press LED feedback stays lit.
func WithFeedbackDuration(d time.Duration) Option {
	return func(opts *ClientOptions) {
		opts.FeedbackDuration = d
	}
}

// WithoutFeedback disables per-button LED feedback.
func WithoutFeedback() Option {
	return func(opts *ClientOptions) {
		opts.DisableFeedback = true
	}
}

// WithQueueSize sets the inbound frame queue depth.
func WithQueueSize(n int) Option {
	return func(opts *ClientOptions) {
		opts.QueueSize = n
	}
}
