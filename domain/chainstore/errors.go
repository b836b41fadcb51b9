package chainstore

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOpen is matched by errors returned when the database can't be
	// opened or read.
	ErrOpen = errors.New("couldn't open the chain store")

	// ErrSerialize is matched by errors returned when the chain can't be
	// encoded.
	ErrSerialize = errors.New("couldn't serialize the chain")

	// ErrStore is matched by errors returned when the database rejects a
	// write or a close.
	ErrStore = errors.New("couldn't write to the chain store")
)

// Error is the error type returned by the store. It matches one of ErrOpen,
// ErrSerialize or ErrStore with errors.Is and unwraps to the underlying
// cause.
type Error struct {
	kind error
	op   string
	err  error
}

func newError(kind error, op string, err error) *Error {
	return &Error{kind: kind, op: op, err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.op, e.kind, e.err)
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	return target == e.kind
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.err
}

// Op returns the operation that failed.
func (e *Error) Op() string {
	return e.op
}
