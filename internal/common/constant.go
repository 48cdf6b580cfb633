// Package common contains shared constants and small helpers used across the
// mitra client packages.
package common

// Keys of the scalar values kept in the local credential store.
const (
	KeyUserToken = "user_token"
	KeyUserEmail = "user_email"
	KeyUserID    = "user_id"
)

// HTTP header names used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)
