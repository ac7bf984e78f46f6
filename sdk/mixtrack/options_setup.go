package mixtrack

import (
	"github.com/leandrodaf/mixtrack/internal/dispatch"
	"github.com/leandrodaf/mixtrack/internal/logger"
	"github.com/leandrodaf/mixtrack/internal/midiport"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// DefaultPortPattern matches the port names the device registers with the
// operating system.
const DefaultPortPattern = "Mixtrack Platinum FX"

// defaultQueueSize is the inbound frame queue depth between the reader and
// drain goroutines.
const defaultQueueSize = 64

// applyDefaultOptions sets default values for ClientOptions if not
// explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.Transport == nil {
		options.Transport = midiport.New(options.Logger)
	}
	if options.PortPattern == "" {
		options.PortPattern = DefaultPortPattern
	}
	if options.FeedbackDuration == 0 {
		options.FeedbackDuration = dispatch.DefaultFeedbackDuration
	}
	if options.QueueSize <= 0 {
		options.QueueSize = defaultQueueSize
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
