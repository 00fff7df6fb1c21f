package sigs

import (
	"context"
	"testing"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/crypto"
	"github.com/iov-one/swapchain/swaptest/assert"
	"github.com/iov-one/swapchain/x"
)

func TestAuthenticate(t *testing.T) {
	maker := crypto.GenPrivKeyEd25519().PublicKey()
	taker := crypto.GenPrivKeyEd25519().PublicKey()
	stranger := crypto.GenPrivKeyEd25519().PublicKey()
	var auth Authenticate

	empty := context.Background()
	assert.Equal(t, 0, len(auth.GetConditions(empty)))
	assert.Equal(t, false, auth.HasAddress(empty, maker.Address()))
	if x.MainSigner(empty, auth) != nil {
		t.Fatal("unsigned context has no main signer")
	}

	ctx := withSigners(empty, []swapchain.Condition{taker.Condition(), maker.Condition()})
	assert.Equal(t, []swapchain.Condition{taker.Condition(), maker.Condition()}, auth.GetConditions(ctx))
	assert.Equal(t, taker.Condition(), x.MainSigner(ctx, auth))
	assert.Equal(t, true, auth.HasAddress(ctx, maker.Address()))
	assert.Equal(t, true, auth.HasAddress(ctx, taker.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, stranger.Address()))
}
