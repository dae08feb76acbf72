package fetch

import (
	"errors"
	"fmt"

	"hnterm/internal/hn"
)

var (
	// ErrCancelled is returned when the user aborts the wait. It is a
	// normal early return, not a failure: outstanding jobs are abandoned
	// and their results discarded.
	ErrCancelled = errors.New("load cancelled")

	// ErrTimedOut is returned when the deadline expires with jobs still
	// outstanding. No cache writes happen on this path.
	ErrTimedOut = errors.New("timed out while loading sections")
)

// FetchError reports that the remote call for a section failed or
// returned a malformed payload. Recoverable: any prior cache entry for
// the section is preserved.
type FetchError struct {
	Section hn.Section
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Section, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// JoinError reports that a job's worker died before producing an
// outcome. Handled exactly like a FetchError.
type JoinError struct {
	Section hn.Section
	Reason  string
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("job for %s aborted: %s", e.Section, e.Reason)
}
