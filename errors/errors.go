package errors

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

// Kinds shared by the ledger, the swap program and the host. Codes are
// part of the result format returned to clients and must stay stable.
var (
	// ErrUnauthorized: a required signer or program key is missing.
	ErrUnauthorized = Register(2, "unauthorized")
	// ErrNotFound: an account, escrow or other record does not exist.
	ErrNotFound = Register(3, "not found")
	// ErrMsg: the message could not be decoded or routed.
	ErrMsg = Register(4, "invalid message")
	// ErrModel: a record failed validation before being stored.
	ErrModel = Register(5, "invalid model")
	// ErrDuplicate: the key or unique index value is taken.
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman marks a code path that is unreachable in a correct program.
	ErrHuman = Register(7, "coding error")
	// ErrCannotBeModified: an immutable field was changed.
	ErrCannotBeModified = Register(8, "cannot be modified")
	// ErrEmpty: a required value is missing.
	ErrEmpty = Register(9, "value is empty")
	// ErrState: the record is not in a state that allows the operation,
	// for example closing an account that still holds funds.
	ErrState = Register(10, "invalid state")
	// ErrType: a value has an unexpected type.
	ErrType = Register(11, "invalid type")
	// ErrInsufficientAmount: an account balance cannot cover a debit.
	ErrInsufficientAmount = Register(12, "insufficient amount")
	// ErrAmount: an amount is zero where it must be positive.
	ErrAmount = Register(13, "invalid amount")
	// ErrInput: caller supplied arguments do not match the stored state.
	ErrInput = Register(14, "invalid input")
	// ErrExpired: the escrow or proof is no longer valid.
	ErrExpired = Register(15, "expired")
	// ErrOverflow: a balance would exceed its integer range.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")
	// ErrCurrency: two accounts of different assets were combined.
	ErrCurrency = Register(17, "asset issue")
	// ErrDatabase: the storage backend failed.
	ErrDatabase = Register(18, "database failure")
	// ErrPanic marks a recovered panic. Its message is redacted outside
	// debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry maps every code in use to its kind. Code 1 is the internal
// code assigned to errors that carry no kind.
var registry = map[uint32]*Error{
	1: {code: 1, desc: internalLog},
}

// Register declares a new error kind. It panics when code is already
// taken, so call it from package level vars only.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	kind := &Error{code: code, desc: description}
	registry[code] = kind
	return kind
}

// Error is an error kind. Every error returned by a handler wraps
// exactly one kind, which decides the result code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// Code returns the result code of the kind.
func (e Error) Code() uint32 { return e.code }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is a shortcut for Wrapf(e, format, args...).
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err is of this kind. It follows Cause chains and
// looks into every member of a multi error. A nil kind matches any nil
// error, including typed nil pointers.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		switch e := err.(type) {
		case unpacker:
			for _, member := range e.Unpack() {
				if kind.Is(member) {
					return true
				}
			}
			return false
		case causer:
			err = e.Cause()
		default:
			return false
		}
	}
	return false
}

// Wrap adds context to err. The innermost wrap records a stack trace.
// A nil err stays nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error { return e.parent }

// Format prints the recorded stack trace after the message for %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	io.WriteString(s, e.Error())
	if verb != 'v' || !s.Flag('+') {
		return
	}
	if st := stackTrace(e); st != nil {
		fmt.Fprintf(s, "%+v", st)
	}
}

// Recover turns a panic into an ErrPanic stored in *err. It must be
// called directly with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType wraps err with the Go type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrapf(err, "%T", obj)
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found along the Cause chain.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return nil
}

// isNilErr also treats a typed nil pointer as nil.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
