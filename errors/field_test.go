package errors

import (
	"testing"
)

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Maker", ErrEmpty, "required"),
		Field("Amount", ErrAmount, "must be %s", "positive"),
		nil,
	)

	if errs := FieldErrors(err, "Maker"); len(errs) != 1 || !ErrEmpty.Is(errs[0]) {
		t.Fatalf("unexpected Maker errors: %v", errs)
	}
	if errs := FieldErrors(err, "Amount"); len(errs) != 1 || !ErrAmount.Is(errs[0]) {
		t.Fatalf("unexpected Amount errors: %v", errs)
	}
	if errs := FieldErrors(err, "Seed"); len(errs) != 0 {
		t.Fatalf("unexpected Seed errors: %v", errs)
	}
	if got := Field("X", nil, "nothing"); got != nil {
		t.Fatalf("nil error must produce nil field error: %v", got)
	}
}

func TestAppendField(t *testing.T) {
	var errs error
	errs = AppendField(errs, "A", nil)
	if errs != nil {
		t.Fatalf("want nil, got %v", errs)
	}
	errs = AppendField(errs, "A", ErrInput)
	errs = AppendField(errs, "B", ErrCurrency)
	if !ErrInput.Is(errs) || !ErrCurrency.Is(errs) {
		t.Fatalf("both kinds must be found in %v", errs)
	}
}

func TestFields(t *testing.T) {
	cases := map[string]struct {
		err  error
		want []string
	}{
		"no error": {},
		"not a field error": {
			err: Wrap(ErrInput, "plain"),
		},
		"single field": {
			err:  Field("Escrow", ErrEmpty, "required"),
			want: []string{"Escrow"},
		},
		"wrapped group keeps order": {
			err: Wrap(Append(
				Field("TakerAsset", ErrCurrency, ""),
				Wrap(ErrState, "unrelated"),
				Field("Escrow", ErrEmpty, ""),
				Field("TakerAsset", ErrInput, ""),
			), "take"),
			want: []string{"TakerAsset", "Escrow"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := Fields(tc.err)
			if len(got) != len(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("want %v, got %v", tc.want, got)
				}
			}
		})
	}
}
