// Package api implements the remote service client.
//
// A single long-lived Client owns the HTTP session, authentication headers
// and the rate-limit retry policy. Every call goes through the Invoker:
// HTTP 429 responses are retried forever with a randomized multi-minute
// backoff, and every successful mutating call is followed by a short jitter
// sleep so the next call does not trip the limiter.
//
// Absence is not an error at this layer's surface: batch lookups simply omit
// unresolved ids, and per-entity endpoints return ErrNotFound, which callers
// fold into their dead/deleted bookkeeping. Anything else propagates
// unmodified.
package api
