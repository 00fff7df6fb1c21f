package swap

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/pda"
	"github.com/iov-one/swapchain/x"
)

type contextKey int // local to the swap module

const (
	contextKeyProofs contextKey = iota
)

// withAuthority is a private method, as only this module can act on behalf
// of the program authority.
func withAuthority(ctx context.Context, proof pda.Proof) context.Context {
	proofs, _ := ctx.Value(contextKeyProofs).([]pda.Proof)
	cpy := make([]pda.Proof, 0, len(proofs)+1)
	cpy = append(cpy, proofs...)
	cpy = append(cpy, proof)
	return context.WithValue(ctx, contextKeyProofs, cpy)
}

// Authenticate exposes the program derived keys whose proofs are present in
// the context. A proof that does not derive a valid key for the program is
// ignored.
type Authenticate struct {
	program Program
}

var _ x.Authenticator = Authenticate{}

// NewAuthenticate returns an authenticator verifying proofs against given
// program.
func NewAuthenticate(p Program) Authenticate {
	return Authenticate{program: p}
}

// GetConditions returns the conditions of all verified derived keys.
func (a Authenticate) GetConditions(ctx context.Context) []swapchain.Condition {
	proofs, _ := ctx.Value(contextKeyProofs).([]pda.Proof)
	var res []swapchain.Condition
	for _, p := range proofs {
		key, err := p.Key(a.program.ID())
		if err != nil {
			continue
		}
		res = append(res, key.Condition())
	}
	return res
}

// HasAddress returns true if a verified derived key has given address.
func (a Authenticate) HasAddress(ctx context.Context, addr swapchain.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
