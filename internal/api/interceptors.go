package api

import (
	"fmt"
	"net/http"

	"fraudwatch-client/internal/notify"
	"fraudwatch-client/internal/observability"
	"fraudwatch-client/internal/session"
)

// RequestInterceptor is applied to every outgoing request before dispatch,
// in registration order.
type RequestInterceptor func(*http.Request)

// ResponseInterceptor is applied to every inbound response or fault, in
// registration order. resp is nil when no response was received; fault is
// nil on success. Interceptors may side-effect but never replace the fault.
type ResponseInterceptor func(resp *http.Response, fault *Fault)

// bearerAuth attaches the current bearer token, if any. It reads the
// store on every dispatch so retried or queued requests pick up token
// changes.
func bearerAuth(store *session.Store) RequestInterceptor {
	return func(req *http.Request) {
		if token := store.Token(); token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}
}

// sessionGuard performs global teardown on a mid-session 401: clear the
// store, broadcast session-expired. Clear reports whether a live session
// was dropped, so concurrent in-flight 401s broadcast exactly once, and a
// 401 with no prior session (failed login) stays a local caller fault.
func sessionGuard(store *session.Store, bus *notify.Bus) ResponseInterceptor {
	return func(_ *http.Response, fault *Fault) {
		if fault == nil || fault.Status != http.StatusUnauthorized {
			return
		}
		if store.Clear() {
			observability.RecordSessionExpired()
			bus.Publish()
		}
	}
}
