package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches the name of an invalid message or model attribute to err.
// Nil is returned for a nil err, so validation code can wrap every check
// unconditionally:
//
//	errs = errors.AppendField(errs, "Maker", m.Maker.Validate())
//
// Names follow Go field names, for example TakerReceiveAccount.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{name: name, desc: description, parent: err}
}

// AppendField adds the field error built from err, if any, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	name   string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.name, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.name, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

// FieldErrors returns all errors attached to the named field.
func FieldErrors(err error, name string) []error {
	var res []error
	walkFields(err, func(f *fieldError) {
		if f.name == name {
			res = append(res, f)
		}
	})
	return res
}

// Fields returns the names of all invalid fields reported by err, in the
// order they were appended. A name is listed once.
func Fields(err error) []string {
	var names []string
	seen := make(map[string]bool)
	walkFields(err, func(f *fieldError) {
		if !seen[f.name] {
			seen[f.name] = true
			names = append(names, f.name)
		}
	})
	return names
}

// walkFields calls fn with every field error found in err. Grouped errors
// are visited in order. A field error is not descended into.
func walkFields(err error, fn func(*fieldError)) {
	for !isNilErr(err) {
		switch e := err.(type) {
		case *fieldError:
			fn(e)
			return
		case unpacker:
			for _, inner := range e.Unpack() {
				walkFields(inner, fn)
			}
			return
		case causer:
			err = e.Cause()
		default:
			return
		}
	}
}
