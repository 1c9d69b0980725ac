package bridge

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcp-protocol/schema"
)

func TestLogger_Levels(t *testing.T) {
	var testCases = []struct {
		description string
		debugLevel  int
		expect      []schema.LoggingLevel
	}{
		{description: "off", debugLevel: 0},
		{description: "warning", debugLevel: 1, expect: []schema.LoggingLevel{schema.LoggingLevelWarning, schema.LoggingLevelError}},
		{description: "info", debugLevel: 2, expect: []schema.LoggingLevel{schema.LoggingLevelInfo, schema.LoggingLevelWarning, schema.LoggingLevelError}},
		{description: "debug", debugLevel: 3, expect: []schema.LoggingLevel{schema.LoggingLevelDebug, schema.LoggingLevelInfo, schema.LoggingLevelWarning, schema.LoggingLevelError}},
	}

	for _, testCase := range testCases {
		var level atomic.Pointer[schema.LoggingLevel]
		level.Store(LoggingLevel(testCase.debugLevel))
		host := newHostTransport()
		logger := NewLogger(loggerName, &level, host)
		ctx := context.Background()
		require.NoError(t, logger.Debug(ctx, "debug"), testCase.description)
		require.NoError(t, logger.Info(ctx, "info"), testCase.description)
		require.NoError(t, logger.Warning(ctx, "warning"), testCase.description)
		require.NoError(t, logger.Error(ctx, "error"), testCase.description)

		var actual []schema.LoggingLevel
		for _, notification := range host.notifications {
			assert.Equal(t, schema.MethodNotificationMessage, notification.Method, testCase.description)
			params := schema.LoggingMessageNotificationParams{}
			require.NoError(t, json.Unmarshal(notification.Params, &params), testCase.description)
			require.NotNil(t, params.Logger, testCase.description)
			assert.Equal(t, loggerName, *params.Logger, testCase.description)
			actual = append(actual, params.Level)
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}
