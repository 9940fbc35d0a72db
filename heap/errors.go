package heap

import "errors"

// Error kinds per spec §7. All are surfaced to the direct caller via return
// values; the core never logs in a production path (see trace.go for the
// opt-in debug channel).
var (
	// ErrOOM is returned when a growth request to the region provider fails.
	ErrOOM = errors.New("heap: out of memory")

	// ErrInvalidPointer is returned when a pointer handed to Realloc fails
	// the header==footer heuristic (best effort, not a safety guarantee).
	ErrInvalidPointer = errors.New("heap: invalid pointer")

	// ErrInitFailed is returned when the initial region request fails.
	ErrInitFailed = errors.New("heap: initialization failed")
)
