package bridge

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Logger sends log lines to the host as notifications/message. Nothing is
// sent while the level is unset.
type Logger struct {
	name     string
	level    *atomic.Pointer[schema.LoggingLevel]
	notifier transport.Notifier
}

// Logger creates a new logger with a name
func (l *Logger) Logger(name string) *Logger {
	return &Logger{
		name:     name,
		level:    l.level,
		notifier: l.notifier,
	}
}

func (l *Logger) log(ctx context.Context, level schema.LoggingLevel, data any) error {
	threshold := l.level.Load()
	if threshold == nil || threshold.Ordinal() > level.Ordinal() {
		return nil
	}
	notification := &jsonrpc.Notification{Method: schema.MethodNotificationMessage}
	params := schema.LoggingMessageNotificationParams{
		Level:  level,
		Logger: &l.name,
		Data:   data,
	}
	var err error
	notification.Params, err = json.Marshal(params)
	if err != nil {
		return err
	}
	return l.notifier.Notify(ctx, notification)
}

func (l *Logger) Debug(ctx context.Context, data interface{}) error {
	return l.log(ctx, schema.LoggingLevelDebug, data)
}

func (l *Logger) Info(ctx context.Context, data interface{}) error {
	return l.log(ctx, schema.Info, data)
}

func (l *Logger) Warning(ctx context.Context, data interface{}) error {
	return l.log(ctx, schema.Warning, data)
}

func (l *Logger) Error(ctx context.Context, data interface{}) error {
	return l.log(ctx, schema.LoggingLevelError, data)
}

// LoggingLevel maps a host debug level to the lowest level sent to the host;
// 0 disables host logging.
func LoggingLevel(debugLevel int) *schema.LoggingLevel {
	var level schema.LoggingLevel
	switch {
	case debugLevel <= 0:
		return nil
	case debugLevel == 1:
		level = schema.Warning
	case debugLevel == 2:
		level = schema.Info
	default:
		level = schema.LoggingLevelDebug
	}
	return &level
}

func NewLogger(name string, level *atomic.Pointer[schema.LoggingLevel], notifier transport.Notifier) *Logger {
	return &Logger{
		name:     name,
		level:    level,
		notifier: notifier,
	}
}
