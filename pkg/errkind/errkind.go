// Package errkind provides an operation-tagged error that carries a sentinel kind.
//
// Packages declare their kinds in errors.go and wrap failures with Wrap so
// that callers can branch with errors.Is on the kind while the message keeps
// the failing operation and the underlying cause.
package errkind

import "errors"

// Error is an error annotated with the operation that failed and its kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

// Wrap annotates err with op and kind. A nil err yields a kind-only error.
func Wrap(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// New returns an error that only carries op and kind.
func New(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

func (e *Error) Error() string {
	var msg string
	switch {
	case e.Kind != nil && e.Err != nil:
		msg = e.Kind.Error() + ": " + e.Err.Error()
	case e.Kind != nil:
		msg = e.Kind.Error()
	case e.Err != nil:
		msg = e.Err.Error()
	default:
		msg = "unknown error"
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

// Is reports whether target matches the kind of e.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && errors.Is(e.Kind, target)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or nil.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
