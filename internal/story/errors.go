package story

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals the store reported no such record. Callers render a
	// not-found state; this never crashes a page.
	ErrNotFound = errors.New("story: record not found")

	// ErrUnauthorized signals the access credential was rejected. This is an
	// operational failure surfaced to operators, never silently absorbed.
	ErrUnauthorized = errors.New("story: credential rejected")

	// ErrUpstream covers transport failures, non-2xx responses outside the
	// dedicated classes, and malformed payloads. Callers fall back to static
	// defaults for the affected section.
	ErrUpstream = errors.New("story: upstream failure")
)

// NotFoundError carries the identifier that failed to resolve.
type NotFoundError struct {
	Identifier string
	Version    string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Identifier == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: %s (%s)", ErrNotFound.Error(), e.Identifier, e.Version)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// UnauthorizedError carries the HTTP status that rejected the credential.
type UnauthorizedError struct {
	Status int
}

func (e *UnauthorizedError) Error() string {
	if e == nil || e.Status == 0 {
		return ErrUnauthorized.Error()
	}
	return fmt.Sprintf("%s: status %d", ErrUnauthorized.Error(), e.Status)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// UpstreamError carries the failing status and underlying cause when known.
type UpstreamError struct {
	Status int
	Cause  error
}

func (e *UpstreamError) Error() string {
	switch {
	case e == nil:
		return ErrUpstream.Error()
	case e.Status != 0 && e.Cause != nil:
		return fmt.Sprintf("%s: status %d: %v", ErrUpstream.Error(), e.Status, e.Cause)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", ErrUpstream.Error(), e.Status)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", ErrUpstream.Error(), e.Cause)
	default:
		return ErrUpstream.Error()
	}
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

func classifyStatus(status int, identifier, version string) error {
	switch {
	case status == 404:
		return &NotFoundError{Identifier: identifier, Version: version}
	case status == 401 || status == 403:
		return &UnauthorizedError{Status: status}
	default:
		return &UpstreamError{Status: status}
	}
}
