// Package api implements the HTTP client for the shelfstream REST
// backend.
//
// All endpoints are versioned under /v1 and speak the shared response
// envelope: successful responses carry {success, data, meta} and
// failures carry {success:false, error:{code, message, ...}}. The
// client normalizes every failure, transport errors included, into a
// single *Error type so callers never branch on raw HTTP details.
//
// Authentication is a bearer token supplied by an explicit TokenSource;
// the client never reads global session state.
package api
