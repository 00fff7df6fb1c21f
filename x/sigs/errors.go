package sigs

import (
	"github.com/iov-one/swapchain/errors"
)

// ErrInvalidSequence is returned when a signature carries a sequence that
// does not match the next expected value of the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
