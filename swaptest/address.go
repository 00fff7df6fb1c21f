package swaptest

import (
	"crypto/rand"
	"testing"

	swapchain "github.com/iov-one/swapchain"
)

// NewCondition returns a signature condition with random data. Each call
// returns a different condition.
func NewCondition() swapchain.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return swapchain.NewCondition("sigs", "ed25519", data)
}

// NewAddress returns the address of a new random condition.
func NewAddress() swapchain.Address {
	return NewCondition().Address()
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) swapchain.Address {
	t.Helper()

	addr, err := swapchain.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
