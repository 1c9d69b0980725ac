// Package cardbridge connects a vendor card-feed SDK that needs bearer tokens
// with a host application that owns token acquisition.
//
// The host talks to cardbridge over a JSON-RPC message bridge (see package
// bridge). Token requests issued by the SDK are correlated with the host's
// asynchronous answers by opaque identifiers (see package session), so each
// SDK continuation runs exactly once, with the token or with nil.
//
// Example:
//
//	options, _ := cardbridge.LoadOptions(ctx, "cardbridge.yaml")
//	service, _ := cardbridge.New(ctx, options)
//	defer service.Close()
//	client := service.HTTPClient() // authorizes SDK calls with host tokens
//	_ = service.Stdio(ctx).ListenAndServe()
package cardbridge
