// Package bech32 converts addresses to and from the human friendly bech32
// representation used by the command line client.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/swapchain/errors"
)

// HRP is the human readable part used for addresses of this chain.
const HRP = "swap"

// Decode returns the human readable part and the raw payload of a bech32
// encoded string.
func Decode(raw string) (string, []byte, error) {
	hrp, data, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return hrp, payload, nil
}

// Encode returns the bech32 representation of the payload.
func Encode(hrp string, payload []byte) ([]byte, error) {
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	raw, err := bech32.Encode(hrp, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return []byte(raw), nil
}
