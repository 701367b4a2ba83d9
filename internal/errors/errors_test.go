package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrMissingClientSecret,
		ErrValidation,
		ErrUnknownOperation,
		ErrAuth,
		ErrUpstream,
	}
	for i := 0; i < len(sentinels); i++ {
		assert.NotEmpty(t, sentinels[i].Error(), "sentinel error should have non-empty message")
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinel errors should be distinct: %q vs %q", sentinels[i], sentinels[j])
		}
	}
}

func TestTypedErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		err  error
		is   error
		isnt error
	}{
		{&ValidationError{Field: "clientId", Reason: "is required"}, ErrValidation, ErrUpstream},
		{&UnknownOperationError{Name: "nope"}, ErrUnknownOperation, ErrValidation},
		{&AuthError{Status: 401}, ErrAuth, ErrUpstream},
		{&UpstreamError{Operation: "Get client", Status: 404}, ErrUpstream, ErrAuth},
	}
	for _, tt := range tests {
		wrapped := fmt.Errorf("context: %w", tt.err)
		assert.ErrorIs(t, wrapped, tt.is)
		assert.NotErrorIs(t, wrapped, tt.isnt)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "ruleType", Reason: "must be one of USERNAME, EMAIL"}
	assert.Equal(t, `invalid argument "ruleType": must be one of USERNAME, EMAIL`, err.Error())

	err = &ValidationError{Reason: "arguments must be a JSON object"}
	assert.Equal(t, "invalid arguments: arguments must be a JSON object", err.Error())
}

func TestUnknownOperationError_Message(t *testing.T) {
	assert.Equal(t, "Unknown tool: frobnicate", (&UnknownOperationError{Name: "frobnicate"}).Error())
}

func TestAuthError_Message(t *testing.T) {
	err := &AuthError{Status: 401, Body: `{"error":"invalid_client"}`}
	assert.Equal(t, `OAuth2 token request failed: 401 - {"error":"invalid_client"}`, err.Error())
	assert.Equal(t, "invalid_client", err.Code())

	cause := errors.New("connection refused")
	err = &AuthError{Err: cause}
	assert.Equal(t, "OAuth2 token request failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, err.Code())
}

func TestUpstreamError_Message(t *testing.T) {
	err := &UpstreamError{Operation: "Delete deny rule", Status: 404, Body: `{"message":"Deny rule not found"}`}
	assert.Equal(t, `Delete deny rule failed: 404 - {"message":"Deny rule not found"}`, err.Error())
	assert.Equal(t, "Deny rule not found", err.Reason())

	cause := errors.New("dial tcp: connection refused")
	err = &UpstreamError{Operation: "List clients", Err: cause}
	assert.Equal(t, "List clients failed: Unknown - dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, err.Reason())
}

func TestUpstreamError_ReasonFallbacks(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"error":"forbidden"}`, "forbidden"},
		{`{"error_description":"scope missing","error":"insufficient_scope"}`, "scope missing"},
		{`{"detail":"bad id"}`, "bad id"},
		{`not json`, ""},
		{`{"status":500}`, ""},
	}
	for _, tt := range tests {
		err := &UpstreamError{Operation: "x", Status: 500, Body: tt.body}
		assert.Equal(t, tt.want, err.Reason(), "body %s", tt.body)
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 404, StatusOf(fmt.Errorf("wrap: %w", &UpstreamError{Status: 404})))
	assert.Equal(t, 401, StatusOf(&AuthError{Status: 401}))
	assert.Equal(t, 401, StatusOf(&UpstreamError{Err: &AuthError{Status: 401}}))
	assert.Equal(t, 0, StatusOf(errors.New("plain")))
}
