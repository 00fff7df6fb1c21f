package swap

import (
	"context"
	"testing"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/pda"
	"github.com/iov-one/swapchain/store"
	"github.com/iov-one/swapchain/swaptest"
	"github.com/iov-one/swapchain/swaptest/assert"
	"github.com/iov-one/swapchain/x"
	"github.com/iov-one/swapchain/x/cash"
	"github.com/iov-one/swapchain/x/utils"
)

var testProgram = NewProgram(pda.ProgramID{
	0x53, 0x57, 0x41, 0x50, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
	13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28,
})

// fixture is a ledger with the swap and cash extensions wired the same way
// the application does it. Every delivery is atomic.
type fixture struct {
	db       swapchain.CacheableKVStore
	auth     *swaptest.CtxAuth
	bank     cash.Controller
	handlers map[string]swapchain.Handler
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	auth := &swaptest.CtxAuth{Key: "swap-test"}
	bank := cash.NewController(x.ChainAuth(auth, NewAuthenticate(testProgram)))
	f := &fixture{
		db:       store.MemStore(),
		auth:     auth,
		bank:     bank,
		handlers: make(map[string]swapchain.Handler),
	}
	RegisterRoutes(f, auth, testProgram, bank)
	cash.RegisterRoutes(f, auth, bank)
	return f
}

func (f *fixture) Handle(path string, h swapchain.Handler) {
	f.handlers[path] = swaptest.Decorate(h, utils.NewSavepoint().OnDeliver())
}

// deliver runs given message signed by signer.
func (f *fixture) deliver(signer swapchain.Condition, msg swapchain.Msg) (*swapchain.DeliverResult, error) {
	ctx := context.Background()
	if signer != nil {
		ctx = f.auth.SetConditions(ctx, signer)
	}
	tx := &swaptest.Tx{Msg: msg}
	h := f.handlers[msg.Path()]
	if _, err := h.Check(ctx, f.db, tx); err != nil {
		return nil, err
	}
	return h.Deliver(ctx, f.db, tx)
}

// fund opens the associated account of owner and credits it.
func (f *fixture) fund(t testing.TB, owner swapchain.Condition, asset string, amount uint64) swapchain.Address {
	t.Helper()
	addr := cash.AssociatedAddress(owner.Address(), asset)
	_, err := f.bank.EnsureAccount(f.db, addr, owner.Address(), asset)
	assert.Nil(t, err)
	if amount > 0 {
		assert.Nil(t, f.bank.Issue(f.db, addr, amount))
	}
	return addr
}

// balance returns the balance of the associated account or zero if it does
// not exist.
func (f *fixture) balance(t testing.TB, owner swapchain.Condition, asset string) uint64 {
	t.Helper()
	addr := cash.AssociatedAddress(owner.Address(), asset)
	acc, err := f.bank.Account(f.db, addr)
	if err != nil {
		return 0
	}
	return acc.Balance
}

func (f *fixture) hasEscrow(t testing.TB, addr swapchain.Address) bool {
	t.Helper()
	var e Escrow
	return NewBucket().One(f.db, addr, &e) == nil
}

func (f *fixture) hasAccount(t testing.TB, addr swapchain.Address) bool {
	t.Helper()
	_, err := f.bank.Account(f.db, addr)
	return err == nil
}

func makeMsg(maker swapchain.Condition, deposit, offer, seed uint64) *MakeMsg {
	return &MakeMsg{
		Maker:         maker.Address(),
		MakerAsset:    "AAA",
		TakerAsset:    "BBB",
		DepositAmount: deposit,
		OfferAmount:   offer,
		Seed:          seed,
	}
}

func takeMsg(escrow swapchain.Address) *TakeMsg {
	return &TakeMsg{
		Escrow:     escrow,
		MakerAsset: "AAA",
		TakerAsset: "BBB",
	}
}
