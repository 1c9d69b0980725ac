package cardbridge

import (
	"context"

	"github.com/viant/cardbridge/bridge"
)

// Options defines options for configuring a bridge service.
type Options = bridge.Options

// LoadOptions loads YAML options from URL.
func LoadOptions(ctx context.Context, URL string) (*Options, error) {
	return bridge.LoadOptions(ctx, URL)
}

// New creates a bridge service with the given options.
func New(ctx context.Context, options *Options) (*bridge.Service, error) {
	return bridge.New(ctx, options)
}
