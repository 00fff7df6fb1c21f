package app

import (
	"context"
	"sync"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/orm"
	"github.com/tendermint/tendermint/libs/log"
)

// height counts successfully delivered transactions.
var height = orm.NewSequence("ledger", "height")

// Ledger executes transactions against a store. Only one transaction is
// executed at a time. Changes made by a delivered transaction are written
// to the store as a single batch when the handler succeeds, and dropped
// otherwise. Checks never modify the store.
type Ledger struct {
	mu sync.Mutex

	db      swapchain.CacheableKVStore
	handler swapchain.Handler
	queries QueryRouter
	decoder swapchain.TxDecoder
	logger  log.Logger

	// chainID is loaded from the store or set by InitChain
	chainID string
}

// NewLedger returns a ledger hosting given handler over given store. The
// chain id is loaded from the store if it was initialized before.
func NewLedger(db swapchain.CacheableKVStore, handler swapchain.Handler, queries QueryRouter) (*Ledger, error) {
	chainID, err := loadChainID(db)
	if err != nil {
		return nil, err
	}
	return &Ledger{
		db:      db,
		handler: handler,
		queries: queries,
		logger:  log.NewNopLogger(),
		chainID: chainID,
	}, nil
}

// WithLogger sets the logger used by all transactions.
func (l *Ledger) WithLogger(logger log.Logger) *Ledger {
	l.logger = logger
	return l
}

// WithDecoder sets the decoder used by DeliverTx and CheckTx.
func (l *Ledger) WithDecoder(decoder swapchain.TxDecoder) *Ledger {
	l.decoder = decoder
	return l
}

// ChainID returns the chain id or an empty string if the ledger was not
// initialized.
func (l *Ledger) ChainID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chainID
}

// Height returns the number of successfully delivered transactions.
func (l *Ledger) Height() (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return height.Latest(l.db)
}

// InitChain stores the chain id and passes the app state to the
// initializer. It can be called only once in the lifetime of a store.
func (l *Ledger) InitChain(gen *Genesis, init swapchain.Initializer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID != "" {
		return errors.Wrapf(errors.ErrState, "already initialized for chain %s", l.chainID)
	}
	if err := gen.Validate(); err != nil {
		return errors.Wrap(err, "genesis")
	}

	cache := l.db.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if init != nil {
		if err := init.FromGenesis(gen.AppState, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "initialize from genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis state")
	}
	l.chainID = gen.ChainID
	l.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// Check runs the validation of given transaction. The store is not
// modified.
func (l *Ledger) Check(ctx context.Context, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, err := l.context(ctx, "check_tx", tx)
	if err != nil {
		return nil, err
	}
	cache := l.db.CacheWrap()
	defer cache.Discard()
	return l.handler.Check(ctx, cache, tx)
}

// Deliver executes given transaction. All changes are applied together or
// none is.
func (l *Ledger) Deliver(ctx context.Context, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx, err := l.context(ctx, "deliver_tx", tx)
	if err != nil {
		return nil, err
	}
	cache := l.db.CacheWrap()
	res, err := l.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if _, err := height.NextInt(cache); err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "height")
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write changes")
	}
	return res, nil
}

// CheckTx decodes and checks a serialized transaction.
func (l *Ledger) CheckTx(ctx context.Context, raw []byte) (*swapchain.CheckResult, error) {
	tx, err := l.loadTx(raw)
	if err != nil {
		return nil, err
	}
	return l.Check(ctx, tx)
}

// DeliverTx decodes and delivers a serialized transaction.
func (l *Ledger) DeliverTx(ctx context.Context, raw []byte) (*swapchain.DeliverResult, error) {
	tx, err := l.loadTx(raw)
	if err != nil {
		return nil, err
	}
	return l.Deliver(ctx, tx)
}

// Query runs a query registered under the path. A modifier can follow the
// path after a question mark, for example "/accounts?prefix".
func (l *Ledger) Query(path string, data []byte) ([]swapchain.Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queries.query(l.db, path, data)
}

// loadTx calls the decoder, and capture any panics
func (l *Ledger) loadTx(raw []byte) (tx swapchain.Tx, err error) {
	if l.decoder == nil {
		return nil, errors.Wrap(errors.ErrState, "no transaction decoder")
	}
	defer errors.Recover(&err)
	tx, err = l.decoder(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode transaction")
	}
	return tx, nil
}

// context returns the execution context of a transaction. It must be
// called with the lock held.
func (l *Ledger) context(ctx context.Context, call string, tx swapchain.Tx) (context.Context, error) {
	if l.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	h, err := height.Latest(l.db)
	if err != nil {
		return nil, errors.Wrap(err, "height")
	}
	ctx = swapchain.WithChainID(ctx, l.chainID)
	ctx = swapchain.WithHeight(ctx, h)
	ctx = swapchain.WithLogger(ctx, l.logger)
	ctx = swapchain.WithLogInfo(ctx,
		"call", call,
		"path", swapchain.GetPath(tx))
	return ctx, nil
}
