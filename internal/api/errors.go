package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a transport fault.
type Kind string

// Fault kinds.
const (
	// KindValidation covers 4xx responses other than 401; the server
	// detail is surfaced verbatim.
	KindValidation Kind = "validation"
	// KindUnauthorized covers 401 responses.
	KindUnauthorized Kind = "unauthorized"
	// KindServer covers 5xx responses.
	KindServer Kind = "server"
	// KindNetwork covers failures where no response was received.
	KindNetwork Kind = "network"
)

// Fault is the error returned by every failing operation. It carries the
// HTTP status and any structured error payload from the backend. Faults
// are never swallowed: the interceptor pipeline re-raises them unchanged.
type Fault struct {
	Kind   Kind
	Status int    // HTTP status, 0 for network faults
	Detail string // server-provided detail, if any
	cause  error  // underlying transport error for network faults
}

func (f *Fault) Error() string {
	switch f.Kind {
	case KindNetwork:
		return fmt.Sprintf("network fault: %v", f.cause)
	default:
		if f.Detail != "" {
			return fmt.Sprintf("%s fault (status %d): %s", f.Kind, f.Status, f.Detail)
		}
		return fmt.Sprintf("%s fault (status %d)", f.Kind, f.Status)
	}
}

func (f *Fault) Unwrap() error {
	return f.cause
}

// classify maps an HTTP status to a fault kind.
func classify(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// errorBody matches the backend's error envelope. Detail is either a
// plain string or structured validation output (422).
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// newHTTPFault builds a Fault from a non-2xx response.
func newHTTPFault(status int, body []byte) *Fault {
	f := &Fault{Kind: classify(status), Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		var s string
		if json.Unmarshal(eb.Detail, &s) == nil {
			f.Detail = s
		} else {
			f.Detail = string(eb.Detail)
		}
	}
	return f
}

// newNetworkFault builds a Fault for a request that got no response.
func newNetworkFault(err error) *Fault {
	return &Fault{Kind: KindNetwork, cause: err}
}

// IsUnauthorized reports whether err is a 401 fault.
func IsUnauthorized(err error) bool {
	return faultKind(err) == KindUnauthorized
}

// IsValidation reports whether err is a validation fault.
func IsValidation(err error) bool {
	return faultKind(err) == KindValidation
}

// IsServer reports whether err is a 5xx fault.
func IsServer(err error) bool {
	return faultKind(err) == KindServer
}

// IsNetwork reports whether err is a network fault.
func IsNetwork(err error) bool {
	return faultKind(err) == KindNetwork
}

func faultKind(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
