package client

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// FailureKind tags an operational error so the caller can choose the right
// user-facing message. Configuration errors never reach this type: they are
// fatal before any connection attempt.
type FailureKind int

const (
	// FailureConnection covers network problems, unreachable servers and
	// server-selection timeouts.
	FailureConnection FailureKind = iota
	// FailureOperation covers command-level failures, authentication and
	// permission errors included.
	FailureOperation
	// FailureUnexpected is the catch-all for everything else.
	FailureUnexpected
)

// Failure wraps an operational error with its classification.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// classify maps a driver error onto the failure taxonomy. Network labels and
// timeouts are checked before command errors: a command error carrying a
// network label is a connection problem, not an operation one.
func classify(err error) *Failure {
	kind := FailureUnexpected
	switch {
	case mongo.IsNetworkError(err) || mongo.IsTimeout(err):
		kind = FailureConnection
	case isCommandFailure(err):
		kind = FailureOperation
	}
	return &Failure{Kind: kind, Err: err}
}

func isCommandFailure(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return true
	}
	var writeErr mongo.WriteException
	return errors.As(err, &writeErr)
}

func (k FailureKind) String() string {
	switch k {
	case FailureConnection:
		return "connection"
	case FailureOperation:
		return "operation"
	}
	return "unexpected"
}
