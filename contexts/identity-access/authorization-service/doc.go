// Package authorization implements the role model and the per-request access
// policy for RateHub resources.
//
// Layering:
// - domain: principal/decision types, role ordering, the policy table
// - module.go: thin facade consumed by the platform httpserver
//
// The engine is pure: it never touches storage. Ownership inputs must come
// from the currently stored resource, never from the submitted payload.
package authorization
