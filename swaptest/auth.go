package swaptest

import (
	"context"
	"fmt"

	swapchain "github.com/iov-one/swapchain"
)

// Auth is an x.Authenticator satisfying a fixed set of conditions: Signer
// first, followed by Signers.
type Auth struct {
	Signer  swapchain.Condition
	Signers []swapchain.Condition
}

func (a *Auth) GetConditions(context.Context) []swapchain.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]swapchain.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx context.Context, addr swapchain.Address) bool {
	return anyAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator reading conditions stored in the context
// under Key. Two instances with different keys never see each other's
// conditions, which lets tests tell user signatures and program keys apart.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context in which given conditions are satisfied.
func (a *CtxAuth) SetConditions(ctx context.Context, conds ...swapchain.Condition) context.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx context.Context) []swapchain.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []swapchain.Condition:
		return v
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx context.Context, addr swapchain.Address) bool {
	return anyAddress(a.GetConditions(ctx), addr)
}

func anyAddress(conds []swapchain.Condition, addr swapchain.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
