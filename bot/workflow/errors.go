package workflow

import "errors"

var (
	// ErrMalformedToken is returned when callback data cannot be decoded into a token.
	ErrMalformedToken = errors.New("malformed token")
	// ErrPayloadTooLarge is returned when an encoded token exceeds MaxPayloadSize.
	ErrPayloadTooLarge = errors.New("payload too large")
	// ErrUnroutable is returned when no registered route matches a token.
	ErrUnroutable = errors.New("unroutable token")
	// ErrAmbiguousRoute is returned when more than one route matches a token.
	ErrAmbiguousRoute = errors.New("ambiguous route")
	// ErrRenderTargetGone is returned by a Messenger when the message to edit or delete no longer exists.
	ErrRenderTargetGone = errors.New("render target gone")
)
