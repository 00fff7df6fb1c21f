package utils

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
)

// Savepoint runs the rest of the stack on a cache wrap of the store and
// flushes it only on success, so a failed swap or transfer leaves no
// partial balance changes behind. It is off for both Check and Deliver
// until enabled.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ swapchain.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for Check.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Checker) (*swapchain.CheckResult, error) {
	var res *swapchain.CheckResult
	err := isolate(s.onCheck, store, func(db swapchain.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Deliverer) (*swapchain.DeliverResult, error) {
	var res *swapchain.DeliverResult
	err := isolate(s.onDeliver, store, func(db swapchain.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls run on a cache wrap of store when enabled and the store
// supports it, and on store itself otherwise.
func isolate(enabled bool, store swapchain.KVStore, run func(swapchain.KVStore) error) error {
	cacheable, ok := store.(swapchain.CacheableKVStore)
	if !enabled || !ok {
		return run(store)
	}
	cache := cacheable.CacheWrap()
	if err := run(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "writing savepoint")
}
