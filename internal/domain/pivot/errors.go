package pivot

import "fmt"

// ValidationError marks malformed input: an unknown dimension type or a
// patient identifier that is not a UUID. The HTTP layer maps it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// DataAccessError wraps a storage read or write failure. It is not retried
// and not cached; the HTTP layer maps it to 500.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *DataAccessError) Unwrap() error { return e.Err }
