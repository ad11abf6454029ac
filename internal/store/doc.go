// Package store implements the client-side state container.
//
// The container follows a request/success/failure lifecycle: views
// dispatch declarative call descriptors, the store's dispatch
// interceptor performs the HTTP call, and per-resource slice reducers
// fold the resulting lifecycle actions into {loading, error, data}
// state that views render.
//
// Dispatch never returns an error to its caller; every failure
// surfaces as a FAILURE action carried into the owning slice. The
// store is safe for concurrent dispatch and exposes snapshot reads
// plus a change-notification channel for the TUI.
package store
