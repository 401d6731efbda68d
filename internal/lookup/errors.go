package lookup

import "fmt"

// Error describes a failed service call. Op is "search" or "details"; Key is
// the query title or external id that was being looked up.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("lookup %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, key string, err error) *Error {
	return &Error{Op: op, Key: key, Err: err}
}
