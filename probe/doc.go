// Package probe implements the opt-in network liveness pass: contract
// verification against a source-code verification API and HTTP reachability
// of documentation links.
//
// Probing is slow and depends on remote services, so it is never part of the
// structural validation path. Every probe outcome, including timeouts, rate
// limits, and auth failures, is a per-address or per-link result rather than
// an error; only context cancellation stops a pass early. Work is spread
// over a bounded worker pool with a request-rate throttle, and verified
// addresses can be cached in Redis so repeated CI runs skip them.
package probe
