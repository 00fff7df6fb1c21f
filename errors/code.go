package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessCode signals that the processing was successful and no error
	// is returned.
	SuccessCode uint32 = 0

	// All unclassified errors that do not provide a code are clubbed under
	// an internal error code and a generic message instead of detailed
	// error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

type coder interface {
	Code() uint32
}

// Code returns the numeric code of given error. Any error that is not
// created using one of the registered kinds is reported as internal.
func Code(err error) uint32 {
	if isNilErr(err) {
		return SuccessCode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Info returns the code and the message that should be presented to a
// client. Messages of internal errors are hidden unless debug is set.
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessCode, ""
	}

	code := Code(err)
	if debug {
		// Try to trigger full information formatting. This
		// might produce a stacktrace.
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalCode {
		return internalCode, internalLog
	}
	return code, err.Error()
}

// Redact replace all errors that do not initialize with a registered error
// with a generic internal error instance. This function is supposed to hide
// implementation details errors.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if Code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
