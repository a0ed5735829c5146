package elevenlabs

import (
	"fmt"
	"net/http"
)

// Kind classifies why an upstream call did not produce a usable result.
type Kind int

const (
	// NetworkFailure means no HTTP response was received.
	NetworkFailure Kind = iota + 1
	// UpstreamRejected means ElevenLabs answered with a non 2xx status.
	UpstreamRejected
	// MalformedResponse means an answer whose body is not JSON, whatever its status.
	MalformedResponse
	// Timeout means the call did not complete before its deadline.
	Timeout
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case UpstreamRejected:
		return "upstream rejected"
	case MalformedResponse:
		return "malformed response"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is returned by Client.Do for every failed call.
type Error struct {
	Kind       Kind
	StatusCode int
	// Details is the decoded upstream body, or the raw text when it is not JSON.
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == UpstreamRejected:
		return fmt.Sprintf("elevenlabs: %s with status %d", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("elevenlabs: %s: %s", e.Kind, e.Err.Error())
	}
	return "elevenlabs: " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status the bridge answers with for this error.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case UpstreamRejected:
		return e.StatusCode
	case Timeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// IsUpstreamError reports whether the failure is attributed to the provider
// rather than to the bridge.
func (e *Error) IsUpstreamError() bool {
	return e.Kind == UpstreamRejected || e.Kind == Timeout
}
