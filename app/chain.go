package app

import (
	"context"
	"reflect"

	swapchain "github.com/iov-one/swapchain"
)

// Decorators is an ordered middleware stack waiting for its final
// handler. The first decorator runs first. The ledger host builds it as
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators struct {
	chain []swapchain.Decorator
}

// ChainDecorators starts a stack. Nil entries are skipped.
func ChainDecorators(chain ...swapchain.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with chain appended. The receiver is left
// untouched so a common base can be extended in several ways.
func (d Decorators) Chain(chain ...swapchain.Decorator) Decorators {
	next := make([]swapchain.Decorator, len(d.chain), len(d.chain)+len(chain))
	copy(next, d.chain)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNilDecorator(d swapchain.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack over h.
func (d Decorators) WithHandler(h swapchain.Handler) swapchain.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = layer{dec: d.chain[i], inner: h}
	}
	return h
}

// layer runs one decorator around the rest of the stack.
type layer struct {
	dec   swapchain.Decorator
	inner swapchain.Handler
}

var _ swapchain.Handler = layer{}

func (l layer) Check(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	return l.dec.Check(ctx, store, tx, l.inner)
}

func (l layer) Deliver(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	return l.dec.Deliver(ctx, store, tx, l.inner)
}
