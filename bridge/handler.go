package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viant/cardbridge/schema"
	"github.com/viant/cardbridge/session"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"go.uber.org/zap"
)

// Handler serves one bridge connection.
type Handler struct {
	transport.Notifier
	*Logger
	service *Service
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	switch request.Method {
	case schema.MethodSetSessionDelegate:
		result, err := h.SetSessionDelegate(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodAuthTokenReceived:
		result, err := h.AuthTokenReceived(ctx, request.Params)
		h.setResponse(response, result, err)
	case schema.MethodLogout:
		result, err := h.Logout(ctx)
		h.setResponse(response, result, err)
	case schema.MethodEnableDebugMode:
		result, err := h.EnableDebugMode(ctx, request)
		h.setResponse(response, result, err)
	default:
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
	}
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), []byte{})
	}
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodAuthTokenReceived:
		if _, err := h.AuthTokenReceived(ctx, notification.Params); err != nil {
			h.service.logger.Warn("invalid token notification", zap.Int("code", err.Code))
		}
	case schema.MethodLogout:
		_, _ = h.Logout(ctx)
	default:
		h.service.logger.Debug("ignored notification", zap.String("method", notification.Method))
	}
}

// SetSessionDelegate starts a session whose token requests are announced on
// this connection.
func (h *Handler) SetSessionDelegate(ctx context.Context, request *jsonrpc.Request) (schema.BoolResult, *jsonrpc.Error) {
	if h.service.closed.Load() {
		return false, schema.NewSessionDelegateFailed("service closed")
	}
	h.service.delegate.Start(h.requestToken)
	_ = h.Info(ctx, "session delegate set")
	return true, nil
}

// requestToken announces identifier to the host.
func (h *Handler) requestToken(ctx context.Context, identifier string) error {
	params, err := json.Marshal(&schema.AuthTokenRequestedParams{Identifier: identifier})
	if err != nil {
		return err
	}
	_ = h.Debug(ctx, map[string]string{"event": "authTokenRequested", "identifier": identifier})
	return h.Notify(ctx, &jsonrpc.Notification{Method: schema.MethodAuthTokenRequested, Params: params})
}

// AuthTokenReceived resolves a pending token request. Unknown identifiers are
// reported to the host log but still acknowledged.
func (h *Handler) AuthTokenReceived(ctx context.Context, data []byte) (schema.BoolResult, *jsonrpc.Error) {
	params := &schema.AuthTokenReceivedParams{}
	if err := json.Unmarshal(data, params); err != nil {
		return false, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse %v params: %v", schema.MethodAuthTokenReceived, err), data)
	}
	err := h.service.delegate.ReceiveToken(ctx, params.Identifier, params.Token)
	if errors.Is(err, session.ErrUnknownRequest) {
		_ = h.Warning(ctx, fmt.Sprintf("no pending token request: %v", params.Identifier))
	}
	return true, nil
}

// Logout ends the session; pending token requests are dropped.
func (h *Handler) Logout(ctx context.Context) (schema.BoolResult, *jsonrpc.Error) {
	if h.service.closed.Load() {
		return false, schema.NewLogoutFailed("service closed")
	}
	h.service.delegate.Stop()
	_ = h.Info(ctx, "session delegate removed")
	return true, nil
}

// EnableDebugMode sets the host log level.
func (h *Handler) EnableDebugMode(ctx context.Context, request *jsonrpc.Request) (schema.BoolResult, *jsonrpc.Error) {
	params := &schema.EnableDebugModeParams{}
	if err := json.Unmarshal(request.Params, params); err != nil {
		return false, schema.NewDebugModeFailed(err.Error())
	}
	h.service.SetDebugLevel(params.Level)
	_ = h.Debug(ctx, fmt.Sprintf("debug level: %v", params.Level))
	return true, nil
}
