package bridge

import (
	"context"

	"github.com/jessevdk/go-flags"
)

// ParseOptions parses command line args; when --config is given, the file is
// loaded first and flags override its values.
func ParseOptions(ctx context.Context, args []string) (*Options, error) {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return nil, err
	}
	if options.ConfigURL == "" {
		return options, nil
	}
	loaded, err := LoadOptions(ctx, options.ConfigURL)
	if err != nil {
		return nil, err
	}
	if _, err = flags.ParseArgs(loaded, args); err != nil {
		return nil, err
	}
	return loaded, nil
}

func Run(args []string) error {
	ctx := context.Background()
	options, err := ParseOptions(ctx, args)
	if err != nil {
		return err
	}
	service, err := New(ctx, options)
	if err != nil {
		return err
	}
	defer service.Close()
	return service.Stdio(ctx).ListenAndServe()
}
