// Package httptransport defines the wire-level DTOs for authorization
// denials surfaced by the HTTP layer.
package httptransport

// ErrorResponse is the uniform error body for denied requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
