package core

import "errors"

// ErrNotFound is the sentinel for every lookup miss in the core: unknown lot,
// unknown pack, or an already-claimed grading certificate. Adapters map it to
// a user-facing "ID not found" response; nothing in the core panics over it.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err is the lookup-miss sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
