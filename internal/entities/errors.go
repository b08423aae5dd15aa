// Package entities contains core business entities and errors.
package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUserNotFound is returned when a user has no stored state.
	ErrUserNotFound = errors.New("user not found")
	// ErrSubscriptionNotFound signals a missing push subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrPermissionDenied signals that push delivery is not permitted; it
	// disables notifications for the user but is never fatal.
	ErrPermissionDenied = errors.New("permission denied")
)

// FetchFailed reports a pagination failure against the upstream source. It
// carries the cursor of the page that failed, which is the last cursor the
// source handed out successfully, so the caller may resume from that point
// instead of restarting the whole fetch.
type FetchFailed struct {
	Cursor string
	Err    error
}

func (e *FetchFailed) Error() string {
	if e.Cursor == "" {
		return fmt.Sprintf("fetch failed on first page: %v", e.Err)
	}
	return fmt.Sprintf("fetch failed at cursor %q: %v", e.Cursor, e.Err)
}

func (e *FetchFailed) Unwrap() error { return e.Err }
