package model

import "errors"

var (
	// ErrNotFound represents the error for the cases when some entity is not found.
	ErrNotFound = errors.New("not found")
	// ErrBadInput represents the error for the cases when the user input is invalid.
	ErrBadInput = errors.New("bad input")
	// ErrDenied represents the error for the requests rejected by the authorization gate
	// or by the confirmation flow.
	ErrDenied = errors.New("denied")
	// ErrDeploymentInProgress represents the error for a deployment requested while another
	// one is in flight for the same environment.
	ErrDeploymentInProgress = errors.New("deployment in progress")
	// ErrNoPreviousImage represents the error for a rollback on an environment without
	// a recorded previous image.
	ErrNoPreviousImage = errors.New("no previous image")
	// ErrStepTimeout represents the error for a pipeline step that exceeded its time budget.
	ErrStepTimeout = errors.New("step timed out")
	// ErrHealthCheckExhausted represents the error for a health check that failed all
	// bounded attempts.
	ErrHealthCheckExhausted = errors.New("health check exhausted")
	// ErrRollbackFailed represents the error for a rollback whose own deploy or health
	// check failed. The environment requires manual intervention.
	ErrRollbackFailed = errors.New("rollback failed")
	// ErrStateCorrupted represents the error for a malformed on-disk image state.
	// Automated action on the environment must halt until it is repaired.
	ErrStateCorrupted = errors.New("image state corrupted")
)
