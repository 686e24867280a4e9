package stability

import (
	"errors"
	"fmt"
)

// ErrNoAPIKey means the process was started without a provider credential.
// It maps to a 500 configuration error, not a per-request failure.
var ErrNoAPIKey = errors.New("stability API key is not configured")

// ErrUnrecognizedResponse means the upstream body matched none of the
// recognized response shapes.
var ErrUnrecognizedResponse = errors.New("unrecognized provider response shape")

// ValidationError marks a request that is invalid before any upstream call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// UpstreamError carries a non-2xx provider response verbatim so the handler
// can propagate status and body unchanged.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}
