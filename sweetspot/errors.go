package sweetspot

import "fmt"

// ValidationError marks a single record that failed to map onto the domain
// model. It is scoped to that record: batch processing continues without it.
type ValidationError struct {
	Record string // record uuid when known
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("invalid record %s: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("invalid record: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError is a network or HTTP failure for one upstream request.
// During aggregation it is absorbed per course: the course contributes zero
// results and the remaining courses still run.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthorizationError means the upstream answered 401. Unlike a
// TransportError it is systemic: skipping the course or retrying cannot fix a
// missing or expired token, so it always propagates to the caller.
type AuthorizationError struct {
	Endpoint string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s requires authorization: provide a bearer token", e.Endpoint)
}

// ConfigurationError reports contradictory caller input. It is raised before
// any request is issued.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string { return e.Reason }
