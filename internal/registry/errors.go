package registry

import "errors"

var (
	// ErrCommandExists: Add was called for a name already live in the same scope.
	ErrCommandExists = errors.New("command already exists")

	// ErrCommandNotFound: Remove targeted a name with no local entry.
	ErrCommandNotFound = errors.New("command does not exist")

	// ErrCommandNotRegistered: Reload targeted a name with no local entry.
	// Distinct from ErrCommandNotFound because callers branch differently on
	// a failed hot-swap than on a failed delete.
	ErrCommandNotRegistered = errors.New("command not registered")

	// ErrRegistrationTimeout: a remote registry call ran out of time.
	ErrRegistrationTimeout = errors.New("registration timed out")
)
