package sigs

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
)

// RegisterQuery exposes signer records under "/auth".
func RegisterQuery(qr swapchain.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and makes the signer
// keys visible to Authenticate for the rest of the stack. Transactions
// of any other type pass through with no signers.
type Decorator struct {
	unsignedOK bool
}

var _ swapchain.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects a SignedTx without
// signatures.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets a SignedTx with no signatures through.
func (d Decorator) AllowMissingSigs() Decorator {
	d.unsignedOK = true
	return d
}

func (d Decorator) Check(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Checker) (*swapchain.CheckResult, error) {
	ctx, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, store, tx)
}

func (d Decorator) Deliver(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Deliverer) (*swapchain.DeliverResult, error) {
	ctx, err := d.verify(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) verify(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx) (context.Context, error) {
	signed, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers, err := VerifyTxSignatures(store, signed, swapchain.GetChainID(ctx))
	switch {
	case err != nil:
		return nil, errors.Wrap(err, "cannot verify signatures")
	case len(signers) == 0 && !d.unsignedOK:
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
