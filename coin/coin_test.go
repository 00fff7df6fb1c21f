package coin

import (
	"math"
	"testing"

	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/swaptest/assert"
)

func TestValidateTicker(t *testing.T) {
	cases := map[string]struct {
		ticker  string
		wantErr *errors.Error
	}{
		"valid":           {ticker: "ALPHA"},
		"with digits":     {ticker: "B2B"},
		"empty":           {ticker: "", wantErr: errors.ErrEmpty},
		"too short":       {ticker: "AB", wantErr: errors.ErrCurrency},
		"too long":        {ticker: "ABCDEFGHI", wantErr: errors.ErrCurrency},
		"lower case":      {ticker: "eth", wantErr: errors.ErrCurrency},
		"leading digit":   {ticker: "1AB", wantErr: errors.ErrCurrency},
		"with whitespace": {ticker: "AB C", wantErr: errors.ErrCurrency},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateTicker(tc.ticker)
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	sum, err := Add(1000, 50)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1050), sum)

	_, err = Add(math.MaxUint64, 1)
	assert.IsErr(t, errors.ErrOverflow, err)

	diff, err := Sub(1000, 1000)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), diff)

	_, err = Sub(49, 50)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
}

func TestCoinOperations(t *testing.T) {
	a := NewCoin(10, "ALPHA")
	b := NewCoin(5, "BETA")

	_, err := a.Add(b)
	assert.IsErr(t, errors.ErrCurrency, err)

	sum, err := a.Add(NewCoin(5, "ALPHA"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(15, "ALPHA"), sum)

	_, err = a.Subtract(NewCoin(11, "ALPHA"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	rest, err := a.Subtract(NewCoin(10, "ALPHA"))
	assert.Nil(t, err)
	assert.Equal(t, true, rest.IsZero())
	assert.Equal(t, "10 ALPHA", a.String())
}

func TestParseHumanFormat(t *testing.T) {
	cases := map[string]struct {
		input   string
		want    Coin
		wantErr *errors.Error
	}{
		"simple":     {input: "1000 ALPHA", want: NewCoin(1000, "ALPHA")},
		"no space":   {input: "7BETA", want: NewCoin(7, "BETA")},
		"padded":     {input: "  50 B2B ", want: NewCoin(50, "B2B")},
		"negative":   {input: "-5 ALPHA", wantErr: errors.ErrInput},
		"fractional": {input: "1.5 ALPHA", wantErr: errors.ErrInput},
		"no ticker":  {input: "100", wantErr: errors.ErrInput},
		"overflow":   {input: "18446744073709551616 ALPHA", wantErr: errors.ErrOverflow},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseHumanFormat(tc.input)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
