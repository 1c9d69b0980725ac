package schema

const (
	MethodSetSessionDelegate  = "setSessionDelegate"
	MethodAuthTokenReceived   = "onAuthTokenReceived"
	MethodLogout              = "logout"
	MethodEnableDebugMode     = "enableDebugMode"
	MethodNotificationMessage = "notifications/message"

	// host bound notifications
	MethodAuthTokenRequested = "authTokenRequested"
)
