package services

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by every store. Callers branch with errors.Is; the
// stores never retry and never swallow a failure.
var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrCourseNotFound   = errors.New("course not found")
)

// storeErr tags a database failure as StoreUnavailable while keeping the
// underlying cause in the message.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
