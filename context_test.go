package swapchain

import (
	"context"
	"testing"

	"github.com/tendermint/tendermint/libs/log"
)

func TestContextChainID(t *testing.T) {
	ctx := WithChainID(context.Background(), "test-chain")
	if got := GetChainID(ctx); got != "test-chain" {
		t.Fatalf("unexpected chain id: %q", got)
	}

	assertPanics(t, func() { WithChainID(ctx, "other-chain") })
	assertPanics(t, func() { WithChainID(context.Background(), "no") })
	assertPanics(t, func() { GetChainID(context.Background()) })
}

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	if _, ok := GetHeight(ctx); ok {
		t.Fatal("height must not be set")
	}
	if _, err := MustGetHeight(ctx); err == nil {
		t.Fatal("height must be required")
	}

	ctx = WithHeight(ctx, 7)
	if h, ok := GetHeight(ctx); !ok || h != 7 {
		t.Fatalf("unexpected height: %d", h)
	}
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	if GetLogger(ctx) != DefaultLogger {
		t.Fatal("default logger expected")
	}

	logger := log.NewNopLogger()
	ctx = WithLogger(ctx, logger)
	if GetLogger(ctx) != logger {
		t.Fatal("logger not set")
	}

	ctx = WithLogInfo(ctx, "escrow", "abc")
	if GetLogger(ctx) == nil {
		t.Fatal("logger missing")
	}
}

func assertPanics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}
