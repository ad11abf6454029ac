package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		fallback    string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "structured error message wins",
			status:      401,
			body:        `{"success":false,"error":{"code":"INVALID_CREDENTIALS","message":"Invalid email or password","timestamp":"2026-01-01T00:00:00Z","path":"/v1/auth/login","method":"POST"}}`,
			fallback:    "Login Failed",
			wantCode:    "INVALID_CREDENTIALS",
			wantMessage: "Invalid email or password",
		},
		{
			name:        "generic message when structured absent",
			status:      400,
			body:        `{"success":false,"error":{"code":"BAD_REQUEST"},"message":"something went wrong"}`,
			fallback:    "Request Failed",
			wantCode:    "BAD_REQUEST",
			wantMessage: "something went wrong",
		},
		{
			name:        "validation details joined",
			status:      422,
			body:        `{"success":false,"error":{"code":"VALIDATION_ERROR","details":["rating must be between 1 and 5","text too long"]}}`,
			fallback:    "Request Failed",
			wantCode:    "VALIDATION_ERROR",
			wantMessage: "rating must be between 1 and 5; text too long",
		},
		{
			name:        "object details with message field",
			status:      422,
			body:        `{"success":false,"error":{"code":"VALIDATION_ERROR","details":[{"field":"email","message":"email is invalid"}]}}`,
			fallback:    "Request Failed",
			wantCode:    "VALIDATION_ERROR",
			wantMessage: "email is invalid",
		},
		{
			name:        "fallback for unparseable body",
			status:      502,
			body:        `<html>bad gateway</html>`,
			fallback:    "Bad Gateway",
			wantCode:    CodeUnknownError,
			wantMessage: "Bad Gateway",
		},
		{
			name:        "fallback for empty envelope",
			status:      500,
			body:        `{"success":false,"error":{}}`,
			fallback:    "Internal Server Error",
			wantCode:    CodeUnknownError,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeError(tt.status, []byte(tt.body), tt.fallback)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMessage, got.Message)
		})
	}
}

func TestErrorTransient(t *testing.T) {
	assert.True(t, (&Error{StatusCode: 0, Code: CodeNetworkError}).Transient())
	assert.True(t, (&Error{StatusCode: 503}).Transient())
	assert.False(t, (&Error{StatusCode: 401}).Transient())
	assert.False(t, (&Error{StatusCode: 422}).Transient())
}
