package bridge

import "time"

// Options configures the bridge service. Values loaded from a config file are
// overridden by command line flags.
type Options struct {
	ConfigURL       string        `short:"f" long:"config" description:"yaml config URL" yaml:"-" json:"-"`
	TokenTimeout    time.Duration `short:"t" long:"timeout" description:"token request timeout, 0 waits for the host" yaml:"tokenTimeout" json:"tokenTimeout,omitempty"`
	DebugLevel      int           `short:"d" long:"debug" description:"initial host log level (0-3)" yaml:"debugLevel" json:"debugLevel,omitempty"`
	Verbose         bool          `short:"v" long:"verbose" description:"write diagnostics to stderr" yaml:"verbose" json:"verbose,omitempty"`
	StaticToken     string        `short:"s" long:"token" description:"static bearer token" yaml:"staticToken" json:"staticToken,omitempty"`
	OAuth2ConfigURL string        `short:"c" long:"oauth2" description:"oauth2 client config URL" yaml:"oauth2ConfigURL" json:"oauth2ConfigURL,omitempty"`
	Scopes          []string      `long:"scope" description:"oauth2 scope" yaml:"scopes" json:"scopes,omitempty"`
}
