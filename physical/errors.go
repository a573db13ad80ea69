package physical

import (
	"github.com/mvbdecode/mvbdecode/errs"
	"github.com/mvbdecode/mvbdecode/sample"
)

// ErrEndOfStream is re-exported so callers can errors.Is against a single
// sentinel regardless of which layer surfaced stream exhaustion.
var ErrEndOfStream = sample.ErrEndOfStream

func newFramingError(format string, args ...any) error {
	return errs.NewFraming(format, args...)
}

// IsFraming reports whether err is a recoverable framing error.
func IsFraming(err error) bool {
	return errs.IsFraming(err)
}
