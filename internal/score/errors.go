package score

import "errors"

var (
	// ErrNoActiveStudent is returned when a score is recorded with no
	// logged-in student. Callers log and drop the score; it is not fatal.
	ErrNoActiveStudent = errors.New("score: no active student")

	// ErrInvalidFormat is returned when an imported snapshot lacks the
	// scores field or cannot be parsed. The store is left untouched.
	ErrInvalidFormat = errors.New("score: invalid snapshot format")
)
