package domain

import "errors"

var (
	// ErrUnavailable means the OS media subsystem could not be reached or timed out
	ErrUnavailable = errors.New("media session service unavailable")

	// ErrSessionNotFound means no session of the target application is active
	ErrSessionNotFound = errors.New("no matching media session")

	// ErrSessionVanished means a handle stopped working because its application went away
	ErrSessionVanished = errors.New("media session vanished")

	// ErrMalformedText means a property could not be represented as a C string
	ErrMalformedText = errors.New("text not representable at the boundary")

	// ErrEmptyThumbnail means the session reported a zero-length cover art stream
	ErrEmptyThumbnail = errors.New("cover art stream is empty")

	// ErrUnsupported means no session provider exists for this platform
	ErrUnsupported = errors.New("media sessions not supported on this platform")

	// ErrInternal wraps a recovered panic
	ErrInternal = errors.New("internal error")
)
