package mixtrack

import (
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// New creates a controller client with the specified options. Defaults are
// applied for anything not explicitly provided; see options_setup.go.
func New(opts ...contracts.Option) (*Client, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newClient(options), nil
}
