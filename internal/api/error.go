package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error codes the client itself assigns. Everything else comes from the
// server's error envelope verbatim.
const (
	CodeNetworkError = "NETWORK_ERROR"
	CodeDecodeError  = "DECODE_ERROR"
	CodeUnknownError = "UNKNOWN_ERROR"
)

// Error is the normalized form of every failed call: transport errors,
// 4xx/5xx envelopes, and undecodable responses all collapse into it.
type Error struct {
	StatusCode int      // 0 when no response was received
	Code       string   // server error code or a client-assigned one
	Message    string   // human-readable message
	Timestamp  string   // server-reported, may be empty
	Path       string   // request path as echoed by the server
	Method     string
	Details    []string // validation messages, when present
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Transient reports whether retrying the same call could plausibly
// succeed without the user changing anything.
func (e *Error) Transient() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// errorEnvelope mirrors the server's failure wrapper.
type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		Timestamp string          `json:"timestamp"`
		Path      string          `json:"path"`
		Method    string          `json:"method"`
		Details   json.RawMessage `json:"details,omitempty"`
	} `json:"error"`
	Message string `json:"message,omitempty"`
}

// normalizeError turns a non-2xx response body into *Error.
//
// Message extraction priority: the structured error.message field, then
// a generic top-level message, then joined validation details, then a
// fallback string supplied by the caller.
func normalizeError(statusCode int, body []byte, fallback string) *Error {
	apiErr := &Error{
		StatusCode: statusCode,
		Code:       CodeUnknownError,
		Message:    fallback,
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return apiErr
	}

	if env.Error.Code != "" {
		apiErr.Code = env.Error.Code
	}
	apiErr.Timestamp = env.Error.Timestamp
	apiErr.Path = env.Error.Path
	apiErr.Method = env.Error.Method
	apiErr.Details = parseDetails(env.Error.Details)

	switch {
	case env.Error.Message != "":
		apiErr.Message = env.Error.Message
	case env.Message != "":
		apiErr.Message = env.Message
	case len(apiErr.Details) > 0:
		apiErr.Message = strings.Join(apiErr.Details, "; ")
	}

	return apiErr
}

// parseDetails accepts either a plain string array or an array of
// objects carrying a message field, both seen in the wild.
func parseDetails(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var objs []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &objs); err == nil {
		out := make([]string, 0, len(objs))
		for _, o := range objs {
			if o.Message != "" {
				out = append(out, o.Message)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	return nil
}
