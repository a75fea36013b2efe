package utils

import (
	"context"
	"errors"
	"net"
)

// IsTemporaryErr reports whether a transport failure is plausibly
// transient, i.e. whether a caller-driven retry could succeed. Context
// cancellation is the caller's own decision and never temporary.
func IsTemporaryErr(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	// DNS hiccups, refused connections and the like tend to clear.
	return true
}
