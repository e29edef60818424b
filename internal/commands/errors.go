package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command failures. Operators grep these in
// structured logs to tell a rejected message apart from a run that died
// mid-flight.
const (
	CodeMessageRejected = "PROVISION_MESSAGE_REJECTED"
	CodeRunCanceled     = "PROVISION_RUN_CANCELED"
	CodeRunTimedOut     = "PROVISION_RUN_TIMED_OUT"
	CodeRunFailed       = "PROVISION_RUN_FAILED"
)

// tagRejected marks a message that never passed validation. Errors already
// carrying a category pass through untouched.
func tagRejected(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "provisioning message rejected").
		WithTextCode(CodeMessageRejected)
}

// tagInterrupted classifies a context failure observed around the run body.
func tagInterrupted(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	message, code := "provisioning run interrupted", CodeRunFailed
	switch {
	case errors.Is(err, context.Canceled):
		message, code = "provisioning run canceled", CodeRunCanceled
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "provisioning run timed out", CodeRunTimedOut
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

// tagFailed wraps an error returned by the run body itself.
func tagFailed(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "provisioning run failed").
		WithTextCode(CodeRunFailed)
}
