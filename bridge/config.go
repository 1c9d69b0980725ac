package bridge

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/cardbridge/schema"
	"gopkg.in/yaml.v3"
)

// LoadOptions reads YAML encoded options from URL (any afs supported scheme).
func LoadOptions(ctx context.Context, URL string) (*Options, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := &Options{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	ret.ConfigURL = URL
	return ret, nil
}

func (o *Options) Validate() error {
	if o.DebugLevel < 0 || o.DebugLevel > schema.MaxDebugLevel {
		return fmt.Errorf("invalid debug level: %v", o.DebugLevel)
	}
	if o.TokenTimeout < 0 {
		return fmt.Errorf("invalid token timeout: %v", o.TokenTimeout)
	}
	if o.StaticToken != "" && o.OAuth2ConfigURL != "" {
		return fmt.Errorf("static token and oauth2 config are mutually exclusive")
	}
	return nil
}
