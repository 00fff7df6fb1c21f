package x

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/pda"
)

// Authenticator reports the conditions satisfied by the current context.
//
// Two kinds of conditions reach the ledger. User keys are added by x/sigs
// once their signatures verify. Program derived keys are added by the
// program owning them, after it checked a derivation proof. Both authorize
// the same operations, but only user keys ever sign a transaction.
type Authenticator interface {
	GetConditions(context.Context) []swapchain.Condition
	HasAddress(context.Context, swapchain.Address) bool
}

// MultiAuth combines several authenticators. A condition satisfied by any
// of them is satisfied by the combination.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator backed by all given ones, consulted
// in order.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx context.Context) []swapchain.Condition {
	var res []swapchain.Condition
	for _, impl := range m {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

func (m MultiAuth) HasAddress(ctx context.Context, addr swapchain.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// Signers returns the user key conditions satisfied in the context. Program
// derived keys are left out.
func Signers(ctx context.Context, auth Authenticator) []swapchain.Condition {
	var res []swapchain.Condition
	for _, c := range auth.GetConditions(ctx) {
		if !pda.IsKeyCondition(c) {
			res = append(res, c)
		}
	}
	return res
}

// ProgramKeys returns the program derived key conditions satisfied in the
// context.
func ProgramKeys(ctx context.Context, auth Authenticator) []swapchain.Condition {
	var res []swapchain.Condition
	for _, c := range auth.GetConditions(ctx) {
		if pda.IsKeyCondition(c) {
			res = append(res, c)
		}
	}
	return res
}

// MainSigner returns the first user signer or nil if nobody signed.
func MainSigner(ctx context.Context, auth Authenticator) swapchain.Condition {
	if s := Signers(ctx, auth); len(s) > 0 {
		return s[0]
	}
	return nil
}

// RequireAddress returns ErrUnauthorized unless given address is
// authenticated in the context. Role names the party in the error message.
func RequireAddress(ctx context.Context, auth Authenticator, addr swapchain.Address, role string) error {
	if auth.HasAddress(ctx, addr) {
		return nil
	}
	return errors.Wrapf(errors.ErrUnauthorized, "%s %s not authenticated", role, addr)
}
