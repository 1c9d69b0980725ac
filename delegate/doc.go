// Package delegate supplies authentication tokens to a vendor SDK on demand.
//
// The Delegate is process scoped state owned by the integration layer. It is
// started when the host installs a session delegate and stopped on logout or
// when the host side listener goes away. While started, every token request
// is registered with a session.Broker and its identifier is handed to a
// Notifier, which forwards it to the host. The host later answers with
// ReceiveToken.
//
// Token continuations never run on the caller's goroutine: they are
// submitted to a dispatch.Executor under the MustComplete policy, so a
// continuation is delivered even if the original requester stopped waiting.
package delegate
