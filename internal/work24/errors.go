package work24

import (
	"fmt"
	"net/http"
	"strings"
)

// ConfigurationError reports a missing credential. It is returned before any
// network I/O so callers can tell setup problems from upstream failures.
type ConfigurationError struct {
	API    API
	EnvVar string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s environment variable is not set", e.EnvVar)
}

// UpstreamError covers transport failures, non-2xx statuses and bodies that
// could not be decoded. Status is zero when no response was received.
type UpstreamError struct {
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "calling %s", e.Endpoint)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": bad status: %d %s", e.Status, http.StatusText(e.Status))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error { return e.Err }
