package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil errors are given, nil is returned. A single non-nil error
// is returned unchanged.
func Append(errs ...error) error {
	var flat []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			flat = append(flat, m.errs...)
		} else {
			flat = append(flat, e)
		}
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &multiErr{errs: flat}
	}
}

type multiErr struct {
	errs []error
}

func (e *multiErr) Error() string {
	points := make([]string, len(e.errs))
	for i, err := range e.errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(e.errs), strings.Join(points, "\n\t"))
}

// Unpack returns all errors clubbed together by this instance.
func (e *multiErr) Unpack() []error {
	return e.errs
}

// Cause returns the first error, consistent with a fail-fast approach.
func (e *multiErr) Cause() error {
	return e.errs[0]
}

// unpacker is implemented by errors that group other errors.
type unpacker interface {
	Unpack() []error
}
