package bridge

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/viant/cardbridge/auth/transport"
	"github.com/viant/cardbridge/delegate"
	"github.com/viant/cardbridge/internal/dispatch"
	"github.com/viant/cardbridge/session"
	jtransport "github.com/viant/jsonrpc/transport"
	stdiosrv "github.com/viant/jsonrpc/transport/server/stdio"
	"github.com/viant/mcp-protocol/schema"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const loggerName = "cardbridge"

// Service owns the session state shared by every bridge connection.
type Service struct {
	options      *Options
	broker       *session.Broker
	executor     *dispatch.Executor
	delegate     *delegate.Delegate
	logger       *zap.Logger
	zapLevel     zap.AtomicLevel
	hostLevel    atomic.Pointer[schema.LoggingLevel]
	roundTripper *transport.RoundTripper
	closed       atomic.Bool
}

// NewHandler creates a connection handler; it matches the handler factory
// expected by jsonrpc servers.
func (s *Service) NewHandler(ctx context.Context, aTransport jtransport.Transport) jtransport.Handler {
	return s.newHandler(ctx, aTransport)
}

func (s *Service) newHandler(_ context.Context, aTransport jtransport.Transport) *Handler {
	return &Handler{
		service:  s,
		Notifier: aTransport,
		Logger:   NewLogger(loggerName, &s.hostLevel, aTransport),
	}
}

// Stdio returns a JSON-RPC server over standard input/output.
func (s *Service) Stdio(ctx context.Context) *stdiosrv.Server {
	return stdiosrv.New(ctx, s.NewHandler)
}

// HTTPClient returns a client authorizing requests with the configured token source.
func (s *Service) HTTPClient() *http.Client {
	return &http.Client{Transport: s.roundTripper}
}

// RoundTripper returns the bearer round tripper backing HTTPClient.
func (s *Service) RoundTripper() *transport.RoundTripper {
	return s.roundTripper
}

// Delegate returns the session delegate the vendor SDK requests tokens from.
func (s *Service) Delegate() *delegate.Delegate {
	return s.delegate
}

// SetDebugLevel sets the host log level (0 disables it); level 3 also turns
// on debug diagnostics.
func (s *Service) SetDebugLevel(level int) {
	s.hostLevel.Store(LoggingLevel(level))
	if level >= 3 {
		s.zapLevel.SetLevel(zap.DebugLevel)
	} else {
		s.zapLevel.SetLevel(zap.InfoLevel)
	}
	s.logger.Info("debug level set", zap.Int("level", level))
}

// Close ends the session and delivers queued continuations.
func (s *Service) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.delegate.Close()
	s.executor.Close()
	_ = s.logger.Sync()
	return nil
}

func (s *Service) tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	switch {
	case s.options.StaticToken != "":
		s.logger.Info("using static token")
		return delegate.StaticTokenSource(s.options.StaticToken), nil
	case s.options.OAuth2ConfigURL != "":
		s.logger.Info("using oauth2 client credentials", zap.String("config", s.options.OAuth2ConfigURL))
		return delegate.OAuth2TokenSource(ctx, s.options.OAuth2ConfigURL, s.options.Scopes...)
	}
	return s.delegate.TokenSource(ctx), nil
}

func newLogger(verbose bool, level zap.AtomicLevel) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	config := zap.NewDevelopmentConfig()
	config.Level = level
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

// New creates a bridge Service.
func New(ctx context.Context, options *Options) (*Service, error) {
	if options == nil {
		options = &Options{}
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	ret := &Service{
		options:  options,
		broker:   session.New(),
		executor: dispatch.New(),
		zapLevel: zap.NewAtomicLevelAt(zap.InfoLevel),
	}
	var err error
	if ret.logger, err = newLogger(options.Verbose, ret.zapLevel); err != nil {
		ret.executor.Close()
		return nil, err
	}
	ret.delegate = delegate.New(ret.broker,
		delegate.WithExecutor(ret.executor),
		delegate.WithLogger(ret.logger.Named("delegate")),
		delegate.WithTimeout(options.TokenTimeout))
	ret.SetDebugLevel(options.DebugLevel)

	source, err := ret.tokenSource(ctx)
	if err == nil {
		ret.roundTripper, err = transport.New(transport.WithTokenSource(source))
	}
	if err != nil {
		_ = ret.Close()
		return nil, err
	}
	return ret, nil
}
