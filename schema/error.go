package schema

import "github.com/viant/jsonrpc"

// Application error codes keep the host plugin's numbering, shifted into the
// JSON-RPC server error range.
const (
	DebugModeFailed       = -32002
	LogoutFailed          = -32003
	SessionDelegateFailed = -32019
)

// NewLogoutFailed creates a logout error
func NewLogoutFailed(message string) *jsonrpc.Error {
	return jsonrpc.NewError(LogoutFailed, "Failed to logout: "+message, nil)
}

// NewSessionDelegateFailed creates a session delegate error
func NewSessionDelegateFailed(message string) *jsonrpc.Error {
	return jsonrpc.NewError(SessionDelegateFailed, "Failed to set session delegate: "+message, nil)
}

// NewDebugModeFailed creates a debug mode error
func NewDebugModeFailed(message string) *jsonrpc.Error {
	return jsonrpc.NewError(DebugModeFailed, "Failed to set debug mode: "+message, nil)
}
