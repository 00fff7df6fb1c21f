package orm

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
	amino "github.com/tendermint/go-amino"
)

var testCdc = amino.NewCodec()

// Counter is a model used only in tests.
type Counter struct {
	Owner []byte
	Count int64
}

func (c *Counter) Marshal() ([]byte, error) {
	return testCdc.MarshalBinaryBare(c)
}

func (c *Counter) Unmarshal(raw []byte) error {
	return testCdc.UnmarshalBinaryBare(raw, c)
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Field("Count", errors.ErrModel, "negative")
	}
	return nil
}

func counterOwner(m Model) ([]byte, error) {
	c, ok := m.(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return c.Owner, nil
}

type queryRouter struct {
	handlers map[string]swapchain.QueryHandler
}

func newQueryRouter() *queryRouter {
	return &queryRouter{handlers: make(map[string]swapchain.QueryHandler)}
}

func (r *queryRouter) Register(path string, h swapchain.QueryHandler) {
	r.handlers[path] = h
}

func (r *queryRouter) Handler(path string) swapchain.QueryHandler {
	return r.handlers[path]
}
