package swapchain

import (
	"context"
	"regexp"

	"github.com/iov-one/swapchain/errors"
	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the swapchain module

const (
	contextKeyChainID contextKey = iota
	contextKeyHeight
	contextKeyLogger
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithChainID sets the chain id for the Context.
// panics if called with chain id already set
func WithChainID(ctx context.Context, chainID string) context.Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set in Context")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain ID")
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id
// panics if chain id not already set (should never happen)
func GetChainID(ctx context.Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Chain id not set in Context")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithHeight sets the height of the ledger for the Context. Height is the
// number of transactions successfully executed before the current one.
func WithHeight(ctx context.Context, height int64) context.Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current height. The second value is false if the
// height was never set.
func GetHeight(ctx context.Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// MustGetHeight returns the current height or an error if the height is not
// set in given context.
func MustGetHeight(ctx context.Context) (int64, error) {
	h, ok := GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrState, "height not set in context")
	}
	return h, nil
}

// WithLogger sets the logger for this Context
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
