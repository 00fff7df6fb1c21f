/*
Package coin defines asset identifiers and the overflow checked arithmetic
used to move quantities of an asset between holding accounts.

An asset is identified by its ticker. Quantities are whole, non negative
units represented as uint64.
*/
package coin

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/iov-one/swapchain/errors"
)

// IsCC is the RegExp to ensure valid asset tickers
var IsCC = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,7}$`).MatchString

// ValidateTicker returns an error if given string is not a valid asset
// ticker.
func ValidateTicker(ticker string) error {
	if ticker == "" {
		return errors.Wrap(errors.ErrEmpty, "ticker")
	}
	if !IsCC(ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
	}
	return nil
}

// Add returns the sum of both values or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

// Sub returns a - b or ErrInsufficientAmount when b is greater than a.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "need %d, have %d", b, a)
	}
	return a - b, nil
}

// Coin is a quantity of a single asset.
type Coin struct {
	Ticker string `json:"ticker"`
	Amount uint64 `json:"amount"`
}

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// Validate returns an error if the ticker is not valid.
func (c Coin) Validate() error {
	return ValidateTicker(c.Ticker)
}

// IsZero returns true if the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// Equals returns true if both coins are of the same asset and amount.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// Add returns the sum of two coins of the same asset.
func (c Coin) Add(o Coin) (Coin, error) {
	if c.Ticker != o.Ticker {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "%s and %s", c.Ticker, o.Ticker)
	}
	sum, err := Add(c.Amount, o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return NewCoin(sum, c.Ticker), nil
}

// Subtract returns c - o for two coins of the same asset.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if c.Ticker != o.Ticker {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "%s and %s", c.Ticker, o.Ticker)
	}
	diff, err := Sub(c.Amount, o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return NewCoin(diff, c.Ticker), nil
}

func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// ParseHumanFormat parses the "<amount> <ticker>" representation, for
// example "1000 ALPHA".
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "invalid amount: %s", err)
	}
	return NewCoin(amount, m[2]), nil
}

var humanCoinFormatRx = regexp.MustCompile(`^\s*(\d+)\s*([A-Z][A-Z0-9]{2,7})\s*$`)
