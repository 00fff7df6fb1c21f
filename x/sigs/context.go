package sigs

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/x"
)

// signerSet holds the conditions of all verified signatures of a
// transaction in signing order, indexed by address.
type signerSet struct {
	conds []swapchain.Condition
	addrs map[string]struct{}
}

type signersKey struct{}

// withSigners records verified signers. Only the Decorator calls it, so no
// other extension can claim a user signature.
func withSigners(ctx context.Context, signers []swapchain.Condition) context.Context {
	set := signerSet{
		conds: signers,
		addrs: make(map[string]struct{}, len(signers)),
	}
	for _, c := range signers {
		set.addrs[string(c.Address())] = struct{}{}
	}
	return context.WithValue(ctx, signersKey{}, set)
}

func signersFrom(ctx context.Context) signerSet {
	set, _ := ctx.Value(signersKey{}).(signerSet)
	return set
}

// Authenticate exposes the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the signer conditions in signing order. It is empty
// outside of a signed transaction.
func (Authenticate) GetConditions(ctx context.Context) []swapchain.Condition {
	return signersFrom(ctx).conds
}

func (Authenticate) HasAddress(ctx context.Context, addr swapchain.Address) bool {
	_, ok := signersFrom(ctx).addrs[string(addr)]
	return ok
}
