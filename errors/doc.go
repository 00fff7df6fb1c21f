/*
Package errors implements the error kinds used across swapchain.

Reuse the kinds declared in this package whenever possible and register a
custom kind with Register only when a new category is really needed.

Each kind carries a numeric code that is stable and safe to expose to a
client. Create instances at the point of failure with ErrXyz.New("...") or
errors.Wrap(err, "...") so that a stack trace is attached. Only the most
inner wrap records the stack trace.

Formatting verbs:

	%s is the error message
	%v is the error message
	%+v is the error message followed by the stack trace of the creation point
*/
package errors
