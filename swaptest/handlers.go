package swaptest

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
)

// Handler is a mock implementation of the swapchain.Handler interface.
//
// Each method call is counted. When Key is set, every call writes Value
// under Key before returning, which allows to test if changes made by a
// failing handler are discarded.
type Handler struct {
	checkCall   int
	deliverCall int

	Key   []byte
	Value []byte

	CheckResult swapchain.CheckResult
	CheckErr    error

	DeliverResult swapchain.DeliverResult
	DeliverErr    error
}

var _ swapchain.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db swapchain.KVStore) error {
	if h.Key == nil {
		return nil
	}
	return db.Set(h.Key, h.Value)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator is a mock implementation of the swapchain.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ swapchain.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx, next swapchain.Checker) (*swapchain.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx, next swapchain.Deliverer) (*swapchain.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// Decorate returns a handler that calls given decorator before the handler.
func Decorate(h swapchain.Handler, d swapchain.Decorator) swapchain.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn swapchain.Handler
	dc swapchain.Decorator
}

var _ swapchain.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
