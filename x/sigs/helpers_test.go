package sigs

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/swaptest"
)

// StdTx is a signed transaction used only in tests.
type StdTx struct {
	swapchain.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &swaptest.Msg{RoutePath: "test/payload", Serialized: payload}
	return &StdTx{Tx: &swaptest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// signersHandler remembers the conditions authenticated by the last call.
type signersHandler struct {
	signers []swapchain.Condition
}

func (h *signersHandler) Check(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return &swapchain.CheckResult{}, nil
}

func (h *signersHandler) Deliver(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return &swapchain.DeliverResult{}, nil
}
