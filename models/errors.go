package models

import "errors"

// ErrValidation represents client-supplied data failing a precondition.
// Rejected before any store write.
var ErrValidation = errors.New("validation error")

// ErrMemberNotFound is returned when a member lookup by ID matches nothing.
var ErrMemberNotFound = errors.New("member not found")

// ErrTokenNotFound is returned when a QR token resolves to no member.
// This is a normal outcome, not a store failure.
var ErrTokenNotFound = errors.New("token not found")

// ErrStoreIntegrity is returned when the store violates one of its own
// invariants (e.g. two members sharing a QR token). Logged distinctly from
// ErrTokenNotFound so operators can tell bad input from data corruption.
var ErrStoreIntegrity = errors.New("store integrity fault")

// ErrorResponse is the JSON error envelope returned by all handlers
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
