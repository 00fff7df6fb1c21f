package swap

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/orm"
	"github.com/iov-one/swapchain/x"
	"github.com/iov-one/swapchain/x/cash"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r swapchain.Registry, auth x.Authenticator, program Program, bank cash.Controller) {
	bucket := NewBucket()
	r.Handle(pathMakeMsg, MakeHandler{auth: auth, program: program, bucket: bucket, bank: bank})
	r.Handle(pathTakeMsg, TakeHandler{auth: auth, program: program, bucket: bucket, bank: bank})
	r.Handle(pathRefundMsg, RefundHandler{auth: auth, program: program, bucket: bucket, bank: bank})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr swapchain.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// MakeHandler opens escrows.
type MakeHandler struct {
	auth    x.Authenticator
	program Program
	bucket  orm.ModelBucket
	bank    cash.Controller
}

var _ swapchain.Handler = MakeHandler{}

// Check verifies the maker signed and that the escrow does not exist yet.
func (h MakeHandler) Check(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapchain.CheckResult{}, nil
}

// Deliver stores the escrow, opens the vault and moves the deposit into
// it. The escrow address is returned as result data.
func (h MakeHandler) Deliver(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	msg, addrs, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	escrow := &Escrow{
		Maker:       msg.Maker,
		MakerAsset:  msg.MakerAsset,
		TakerAsset:  msg.TakerAsset,
		Amount:      msg.DepositAmount,
		OfferAmount: msg.OfferAmount,
		Seed:        msg.Seed,
		AuthBump:    addrs.AuthBump,
		VaultBump:   addrs.VaultBump,
		EscrowBump:  addrs.EscrowBump,
	}
	if err := h.bucket.Put(db, addrs.Escrow, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	if _, err := h.bank.CreateAccount(db, addrs.Vault, addrs.Authority, msg.MakerAsset); err != nil {
		return nil, errors.Wrap(err, "cannot open vault")
	}

	src := msg.MakerAccount
	if len(src) == 0 {
		src = cash.AssociatedAddress(msg.Maker, msg.MakerAsset)
	}
	if err := h.bank.Transfer(ctx, db, src, addrs.Vault, msg.DepositAmount); err != nil {
		return nil, errors.Wrap(err, "cannot deposit")
	}

	swapchain.GetLogger(ctx).Info("escrow opened",
		"escrow", addrs.Escrow, "maker", msg.Maker, "seed", msg.Seed)
	return &swapchain.DeliverResult{Data: addrs.Escrow}, nil
}

func (h MakeHandler) validate(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*MakeMsg, *Addresses, error) {
	var msg MakeMsg
	if err := swapchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Maker, "maker"); err != nil {
		return nil, nil, err
	}
	addrs, err := h.program.Derive(msg.Maker, msg.Seed)
	if err != nil {
		return nil, nil, err
	}
	switch err := h.bucket.Has(db, addrs.Escrow); {
	case err == nil:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s with seed %d", addrs.Escrow, msg.Seed)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	return &msg, addrs, nil
}

// RefundHandler cancels escrows.
type RefundHandler struct {
	auth    x.Authenticator
	program Program
	bucket  orm.ModelBucket
	bank    cash.Controller
}

var _ swapchain.Handler = RefundHandler{}

// Check verifies the escrow exists and the maker signed.
func (h RefundHandler) Check(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapchain.CheckResult{}, nil
}

// Deliver removes the escrow and returns the vault content to the maker.
func (h RefundHandler) Deliver(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	msg, escrow, addrs, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Remove(db, addrs.Escrow, escrow); err != nil {
		return nil, err
	}

	dest := msg.MakerAccount
	if len(dest) == 0 {
		dest = cash.AssociatedAddress(escrow.Maker, escrow.MakerAsset)
		if _, err := h.bank.EnsureAccount(db, dest, escrow.Maker, escrow.MakerAsset); err != nil {
			return nil, errors.Wrap(err, "maker account")
		}
	}
	if err := drainVault(withAuthority(ctx, AuthorityProof(escrow.AuthBump)), db, h.bank, addrs.Vault, dest); err != nil {
		return nil, err
	}

	swapchain.GetLogger(ctx).Info("escrow refunded",
		"escrow", addrs.Escrow, "maker", escrow.Maker)
	return &swapchain.DeliverResult{}, nil
}

func (h RefundHandler) validate(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*RefundMsg, *Escrow, *Addresses, error) {
	var msg RefundMsg
	if err := swapchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, addrs, err := loadEscrow(h.program, h.bucket, db, msg.Escrow, msg.Vault, msg.Authority)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, escrow.Maker, "maker"); err != nil {
		return nil, nil, nil, errors.Wrap(err, "only the maker can refund")
	}
	if len(msg.MakerAccount) != 0 {
		if err := requireAccount(db, h.bank, msg.MakerAccount, escrow.Maker, escrow.MakerAsset); err != nil {
			return nil, nil, nil, errors.Wrap(err, "maker account")
		}
	}
	return &msg, escrow, addrs, nil
}

// TakeHandler completes escrows.
type TakeHandler struct {
	auth    x.Authenticator
	program Program
	bucket  orm.ModelBucket
	bank    cash.Controller
}

var _ swapchain.Handler = TakeHandler{}

// Check verifies the escrow exists, the assets match and the taker signed.
func (h TakeHandler) Check(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	if _, _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapchain.CheckResult{}, nil
}

// Deliver removes the escrow, pays the maker and moves the vault content
// to the taker. Both transfers are part of the same transaction.
func (h TakeHandler) Deliver(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	msg, taker, escrow, addrs, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Remove(db, addrs.Escrow, escrow); err != nil {
		return nil, err
	}

	pay := msg.TakerPayAccount
	if len(pay) == 0 {
		pay = cash.AssociatedAddress(taker, escrow.TakerAsset)
	}
	makerReceive := msg.MakerReceiveAccount
	if len(makerReceive) == 0 {
		makerReceive = cash.AssociatedAddress(escrow.Maker, escrow.TakerAsset)
		if _, err := h.bank.EnsureAccount(db, makerReceive, escrow.Maker, escrow.TakerAsset); err != nil {
			return nil, errors.Wrap(err, "maker receive account")
		}
	}
	takerReceive := msg.TakerReceiveAccount
	if len(takerReceive) == 0 {
		takerReceive = cash.AssociatedAddress(taker, escrow.MakerAsset)
		if _, err := h.bank.EnsureAccount(db, takerReceive, taker, escrow.MakerAsset); err != nil {
			return nil, errors.Wrap(err, "taker receive account")
		}
	}

	if err := h.bank.Transfer(ctx, db, pay, makerReceive, escrow.OfferAmount); err != nil {
		return nil, errors.Wrap(err, "cannot pay the maker")
	}
	if err := drainVault(withAuthority(ctx, AuthorityProof(escrow.AuthBump)), db, h.bank, addrs.Vault, takerReceive); err != nil {
		return nil, err
	}

	swapchain.GetLogger(ctx).Info("escrow taken",
		"escrow", addrs.Escrow, "maker", escrow.Maker, "taker", taker)
	return &swapchain.DeliverResult{}, nil
}

func (h TakeHandler) validate(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*TakeMsg, swapchain.Address, *Escrow, *Addresses, error) {
	var msg TakeMsg
	if err := swapchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, addrs, err := loadEscrow(h.program, h.bucket, db, msg.Escrow, msg.Vault, msg.Authority)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if msg.MakerAsset != escrow.MakerAsset || msg.TakerAsset != escrow.TakerAsset {
		return nil, nil, nil, nil, errors.Wrapf(errors.ErrInput,
			"escrow exchanges %s for %s", escrow.MakerAsset, escrow.TakerAsset)
	}

	taker := msg.Taker
	if len(taker) == 0 {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
		}
		taker = signer.Address()
	}
	if err := x.RequireAddress(ctx, h.auth, taker, "taker"); err != nil {
		return nil, nil, nil, nil, err
	}
	if len(msg.MakerReceiveAccount) != 0 {
		if err := requireAccount(db, h.bank, msg.MakerReceiveAccount, escrow.Maker, escrow.TakerAsset); err != nil {
			return nil, nil, nil, nil, errors.Wrap(err, "maker receive account")
		}
	}
	if len(msg.TakerReceiveAccount) != 0 {
		if err := requireAccount(db, h.bank, msg.TakerReceiveAccount, taker, escrow.MakerAsset); err != nil {
			return nil, nil, nil, nil, errors.Wrap(err, "taker receive account")
		}
	}
	return &msg, taker, escrow, addrs, nil
}

// requireAccount fails unless an account holding asset on behalf of owner
// exists at given address.
func requireAccount(db swapchain.ReadOnlyKVStore, bank cash.Controller, addr, owner swapchain.Address, asset string) error {
	acc, err := bank.Account(db, addr)
	if err != nil {
		return err
	}
	if !acc.Owner.Equals(owner) {
		return errors.Wrapf(errors.ErrInput, "account %s does not belong to %s", addr, owner)
	}
	if acc.Asset != asset {
		return errors.Wrapf(errors.ErrInput, "account %s holds %s, not %s", addr, acc.Asset, asset)
	}
	return nil
}

// loadEscrow returns the escrow stored under given address together with
// its derived addresses. Vault and authority are compared with the derived
// ones when given.
func loadEscrow(program Program, bucket orm.ModelBucket, db swapchain.ReadOnlyKVStore, addr, vault, authority swapchain.Address) (*Escrow, *Addresses, error) {
	var escrow Escrow
	if err := bucket.One(db, addr, &escrow); err != nil {
		return nil, nil, errors.Wrapf(err, "escrow %s", addr)
	}
	addrs, err := program.Rebuild(&escrow)
	if err != nil {
		return nil, nil, err
	}
	if !addrs.Escrow.Equals(addr) {
		return nil, nil, errors.Wrap(errors.ErrState, "escrow stored under a foreign address")
	}
	if len(vault) != 0 && !vault.Equals(addrs.Vault) {
		return nil, nil, errors.Wrapf(errors.ErrInput, "vault is %s", addrs.Vault)
	}
	if len(authority) != 0 && !authority.Equals(addrs.Authority) {
		return nil, nil, errors.Wrapf(errors.ErrInput, "authority is %s", addrs.Authority)
	}
	return &escrow, addrs, nil
}

// drainVault moves the whole vault balance to dest and closes the vault.
// Context must carry the authority proof.
func drainVault(ctx context.Context, db swapchain.KVStore, bank cash.Controller, vault, dest swapchain.Address) error {
	balance, err := bank.Balance(db, vault)
	if err != nil {
		return errors.Wrap(err, "vault")
	}
	if balance > 0 {
		if err := bank.Transfer(ctx, db, vault, dest, balance); err != nil {
			return errors.Wrap(err, "cannot withdraw from vault")
		}
	}
	if err := bank.CloseAccount(ctx, db, vault, dest); err != nil {
		return errors.Wrap(err, "cannot close vault")
	}
	return nil
}
