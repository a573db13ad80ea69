// Package errs holds the shared recoverable error taxonomy used across the
// physical decoder, telegram parser, and pairing stages.
package errs

import (
	"errors"
	"fmt"
)

// FramingError is recoverable: the current frame is abandoned and the
// caller resumes at the next Start Bit / next frame.
type FramingError struct {
	Msg string
}

func (e *FramingError) Error() string { return fmt.Sprintf("framing error: %s", e.Msg) }

// NewFraming builds a *FramingError from a format string.
func NewFraming(format string, args ...any) error {
	return &FramingError{Msg: fmt.Sprintf(format, args...)}
}

// IsFraming reports whether err is a *FramingError.
func IsFraming(err error) bool {
	var fe *FramingError
	return errors.As(err, &fe)
}

// ProtocolError is recoverable: the stray frame is dropped and the caller
// resumes pairing.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return fmt.Sprintf("protocol error: %s", e.Msg) }

// NewProtocol builds a *ProtocolError from a format string.
func NewProtocol(format string, args ...any) error {
	return &ProtocolError{Msg: fmt.Sprintf(format, args...)}
}

// IsProtocol reports whether err is a *ProtocolError.
func IsProtocol(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
