// Package assert provides the assertion helpers used in tests across the
// repository. Every helper stops the test on failure.
package assert

import (
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/swapchain/errors"
)

// Tester is the part of testing.TB the helpers need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil or a typed nil. Errors are printed with
// their stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails unless both values are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values differ\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	panicked := func() (p bool) {
		defer func() { p = recover() != nil }()
		fn()
		return false
	}()
	if !panicked {
		t.Fatal("panic expected")
	}
}

// FieldError fails unless err reports the named field with an error of the
// wanted kind. A nil want requires the field to be valid.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	found := errors.FieldErrors(err, field)
	if want == nil {
		if len(found) != 0 {
			t.Fatalf("field %q must be valid, got %v", field, found)
		}
		return
	}
	for _, e := range found {
		if want.Is(e) {
			return
		}
	}
	t.Fatalf("field %q: want %q, got %v (invalid fields: %s)",
		field, want, found, strings.Join(errors.Fields(err), ", "))
}

// IsErr fails unless got is of the same kind as want.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
