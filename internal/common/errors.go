package common

import "errors"

var (
	// ErrCorruptCredential marks a stored credential that cannot be opened
	// or parsed. Clearing the session recovers from it.
	ErrCorruptCredential = errors.New("corrupt credential")
)
