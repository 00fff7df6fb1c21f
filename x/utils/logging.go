package utils

import (
	"context"
	"time"

	swapchain "github.com/iov-one/swapchain"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ swapchain.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Checker) (*swapchain.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx context.Context, store swapchain.KVStore, tx swapchain.Tx, next swapchain.Deliverer) (*swapchain.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx context.Context, tx swapchain.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := swapchain.GetLogger(ctx).With(
		"path", swapchain.GetPath(tx),
		"duration", delta/time.Microsecond)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
