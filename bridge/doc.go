// Package bridge exposes the session delegate to a host application over a
// JSON-RPC message bridge.
//
// The host calls setSessionDelegate once its session is established. From then
// on, every token the vendor SDK needs is announced to the host with an
// authTokenRequested notification carrying an opaque identifier, and the host
// answers with onAuthTokenReceived passing the token (or null) back with the
// same identifier. logout ends the session, and enableDebugMode controls the
// level of notifications/message log lines sent to the host.
//
// The standalone binary lives in cmd/cardbridge and serves the bridge over
// stdio.
package bridge
