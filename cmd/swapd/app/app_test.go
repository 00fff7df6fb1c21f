package swapd

import (
	"context"
	"encoding/json"
	"testing"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/app"
	"github.com/iov-one/swapchain/crypto"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/pda"
	"github.com/iov-one/swapchain/store"
	"github.com/iov-one/swapchain/swaptest/assert"
	"github.com/iov-one/swapchain/x/cash"
	"github.com/iov-one/swapchain/x/sigs"
	"github.com/iov-one/swapchain/x/swap"
	"github.com/tendermint/tendermint/libs/log"
)

func newTestLedger(t testing.TB, accounts ...cash.GenesisAccount) *app.Ledger {
	t.Helper()
	program := swap.NewProgram(pda.ProgramID{0xAB, 0xCD})
	rawSwap, err := json.Marshal(swap.Config{ProgramID: program.ID()})
	assert.Nil(t, err)
	rawCash, err := json.Marshal(accounts)
	assert.Nil(t, err)

	l, err := Ledger(store.MemStore(), program, log.NewNopLogger())
	assert.Nil(t, err)
	gen := &app.Genesis{
		ChainID:  "swapd-test",
		AppState: swapchain.Options{"swap": rawSwap, "cash": rawCash},
	}
	assert.Nil(t, l.InitChain(gen, Initializers()))
	return l
}

func balance(t testing.TB, l *app.Ledger, owner swapchain.Address, asset string) uint64 {
	t.Helper()
	models, err := l.Query("/accounts", cash.AssociatedAddress(owner, asset))
	assert.Nil(t, err)
	if len(models) == 0 {
		return 0
	}
	var acc cash.Account
	assert.Nil(t, acc.Unmarshal(models[0].Value))
	return acc.Balance
}

func TestTxSerialization(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	tx := &Tx{Msg: &swap.RefundMsg{Escrow: key.PublicKey().Address()}}
	unsigned, err := tx.GetSignBytes()
	assert.Nil(t, err)

	sig, err := sigs.SignTx(key, tx, "swapd-test", 3)
	assert.Nil(t, err)
	tx.Signatures = append(tx.Signatures, sig)

	// signatures are not part of the signed bytes
	signed, err := tx.GetSignBytes()
	assert.Nil(t, err)
	assert.Equal(t, unsigned, signed)

	raw, err := tx.Marshal()
	assert.Nil(t, err)
	decoded, err := TxDecoder(raw)
	assert.Nil(t, err)
	again, err := decoded.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, raw, again)
	assert.Equal(t, sig.Signature, decoded.(*Tx).Signatures[0].Signature)

	msg, err := decoded.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, "swap/refund", msg.Path())

	_, err = (&Tx{}).GetMsg()
	assert.IsErr(t, errors.ErrEmpty, err)
	_, err = TxDecoder([]byte("not a transaction"))
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestSignedExchange(t *testing.T) {
	maker := crypto.GenPrivKeyEd25519()
	taker := crypto.GenPrivKeyEd25519()
	makerAddr := maker.PublicKey().Address()
	takerAddr := taker.PublicKey().Address()

	l := newTestLedger(t,
		cash.GenesisAccount{Owner: makerAddr, Asset: "AAA", Balance: 1000},
		cash.GenesisAccount{Owner: takerAddr, Asset: "BBB", Balance: 50},
	)
	ctx := context.Background()

	makeMsg := &swap.MakeMsg{
		Maker:         makerAddr,
		MakerAsset:    "AAA",
		TakerAsset:    "BBB",
		DepositAmount: 1000,
		OfferAmount:   50,
		Seed:          7,
	}

	// the maker must sign its own escrow
	_, err := SignAndSubmit(ctx, l, taker, makeMsg)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	res, err := SignAndSubmit(ctx, l, maker, makeMsg)
	assert.Nil(t, err)
	escrow := res.Data
	assert.Equal(t, uint64(0), balance(t, l, makerAddr, "AAA"))

	seq, err := Sequence(l, maker.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	// a replayed transaction is rejected
	tx := &Tx{Msg: &swap.RefundMsg{Escrow: escrow}}
	sig, err := sigs.SignTx(maker, tx, l.ChainID(), 0)
	assert.Nil(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	_, err = l.Deliver(ctx, tx)
	assert.IsErr(t, sigs.ErrInvalidSequence, err)

	// unsigned transactions are rejected
	_, err = l.Deliver(ctx, &Tx{Msg: &swap.TakeMsg{Escrow: escrow, MakerAsset: "AAA", TakerAsset: "BBB"}})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = SignAndSubmit(ctx, l, taker, &swap.TakeMsg{Escrow: escrow, MakerAsset: "AAA", TakerAsset: "BBB"})
	assert.Nil(t, err)

	assert.Equal(t, uint64(1000), balance(t, l, takerAddr, "AAA"))
	assert.Equal(t, uint64(0), balance(t, l, takerAddr, "BBB"))
	assert.Equal(t, uint64(50), balance(t, l, makerAddr, "BBB"))

	_, err = SignAndSubmit(ctx, l, maker, &swap.RefundMsg{Escrow: escrow})
	assert.IsErr(t, errors.ErrNotFound, err)
}
