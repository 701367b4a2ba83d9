// Package errors defines the failure taxonomy shared by the token
// manager, the admin API client and the dispatcher. Every typed error
// matches its sentinel through errors.Is so callers can branch on the
// kind without caring about the concrete type.
package errors

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Startup errors.
var (
	ErrMissingClientSecret = errors.New("OAUTH2_CLIENT_SECRET environment variable is required")
)

// Operation errors.
var (
	ErrValidation       = errors.New("invalid arguments")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrAuth             = errors.New("OAuth2 token request failed")
	ErrUpstream         = errors.New("admin API request failed")
)

// ValidationError reports a malformed or missing input field. It is
// raised locally and never reaches the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid arguments: %s", e.Reason)
	}

	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// UnknownOperationError is returned for an operation name that is not
// in the registry.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

func (e *UnknownOperationError) Is(target error) bool { return target == ErrUnknownOperation }

// AuthError reports a failed client-credentials exchange. Status is 0
// when the request never produced an HTTP response.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", ErrAuth, e.Err)
		}

		return ErrAuth.Error()
	}

	return fmt.Sprintf("%s: %d - %s", ErrAuth, e.Status, e.Body)
}

func (e *AuthError) Unwrap() error        { return e.Err }
func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// Code returns the OAuth2 "error" field of the token endpoint response
// body, e.g. "invalid_client", or "" when the body is not JSON.
func (e *AuthError) Code() string {
	return gjson.Get(e.Body, "error").String()
}

// UpstreamError reports a failed admin API call. Status is 0 for
// transport failures (connection refused, timeouts, token acquisition
// failures inside the bearer transport).
type UpstreamError struct {
	Operation string
	Status    int
	Body      string
	Err       error
}

func (e *UpstreamError) Error() string {
	status := "Unknown"
	if e.Status != 0 {
		status = strconv.Itoa(e.Status)
	}

	detail := e.Body
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}

	return fmt.Sprintf("%s failed: %s - %s", e.Operation, status, detail)
}

func (e *UpstreamError) Unwrap() error        { return e.Err }
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// Reason extracts a short human readable reason from a JSON error body.
// Spring style bodies carry "message", OAuth style bodies carry
// "error_description" or "error". Returns "" when none is present.
func (e *UpstreamError) Reason() string {
	if e.Body == "" || !gjson.Valid(e.Body) {
		return ""
	}

	for _, key := range []string{"message", "error_description", "detail", "error"} {
		if v := gjson.Get(e.Body, key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}

	return ""
}

// StatusOf returns the HTTP status carried by an UpstreamError or
// AuthError anywhere in err's chain, or 0.
func StatusOf(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.Status != 0 {
		return ue.Status
	}

	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Status
	}

	return 0
}
