package swapchain

import (
	"context"
	"encoding/json"

	"github.com/iov-one/swapchain/errors"
)

// Handler executes the messages of one route, such as "cash/transfer"
// or "swap/make".
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction against state without committing it.
type Checker interface {
	Check(ctx context.Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction. Its writes are kept only when it
// returns no error.
type Deliverer interface {
	Deliver(ctx context.Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around every handler: logging, panic recovery,
// signature checks and savepoints are decorators.
type Decorator interface {
	Check(ctx context.Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx context.Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds a message route to its handler.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult is returned by a successful Check.
type CheckResult struct {
	Log string
}

// DeliverResult is returned by a successful Deliver. Data carries a
// machine readable value such as the address of a new escrow.
type DeliverResult struct {
	Data []byte
	Log  string
}

// Options is the genesis document split one level deep, one raw section
// per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q options: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis section of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// Model is a stored key and value returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// QueryHandler answers the queries of one path.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of an extension.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches queries by path, for example "/accounts" or
// "/escrows/maker".
type QueryRouter interface {
	Register(path string, h QueryHandler)
	Handler(path string) QueryHandler
}

// Query modifiers appended to a path after "?".
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)
