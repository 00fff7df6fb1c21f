package utils

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
)

// Recovery turns a panic of any handler further down the chain into an
// ErrPanic carrying the path of the message being processed. The panic is
// logged together with the path, so a faulty handler can be found without
// a stack trace of the node.
type Recovery struct{}

var _ swapchain.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Checker) (res *swapchain.CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, panicked(ctx, tx, p)
		}
	}()
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Deliverer) (res *swapchain.DeliverResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, panicked(ctx, tx, p)
		}
	}()
	return next.Deliver(ctx, store, tx)
}

func panicked(ctx context.Context, tx swapchain.Tx, p interface{}) error {
	path := "(missing)"
	if tx != nil {
		path = swapchain.GetPath(tx)
	}
	swapchain.GetLogger(ctx).Error("handler panic", "path", path, "panic", p)
	return errors.Wrapf(errors.ErrPanic, "%s: %v", path, p)
}
