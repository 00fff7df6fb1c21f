package swapd

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/app"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/orm"
	"github.com/iov-one/swapchain/x/cash"
	"github.com/iov-one/swapchain/x/swap"
)

// EscrowEntry is an escrow together with its address.
type EscrowEntry struct {
	Address swapchain.Address `json:"address"`
	*swap.Escrow
}

// AccountEntry is a holding account together with its address.
type AccountEntry struct {
	Address swapchain.Address `json:"address"`
	*cash.Account
}

// Escrow returns the escrow stored under given address.
func Escrow(l *app.Ledger, addr swapchain.Address) (*EscrowEntry, error) {
	models, err := l.Query("/escrows", addr)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "escrow %s", addr)
	}
	entries, err := escrowEntries(models)
	if err != nil {
		return nil, err
	}
	return &entries[0], nil
}

// EscrowsByMaker returns all open escrows of given maker.
func EscrowsByMaker(l *app.Ledger, maker swapchain.Address) ([]EscrowEntry, error) {
	models, err := l.Query("/escrows/maker", maker)
	if err != nil {
		return nil, err
	}
	return escrowEntries(models)
}

func escrowEntries(models []swapchain.Model) ([]EscrowEntry, error) {
	entries := make([]EscrowEntry, 0, len(models))
	for _, m := range models {
		var e swap.Escrow
		if err := load(m, &e); err != nil {
			return nil, err
		}
		entries = append(entries, EscrowEntry{Address: m.Key, Escrow: &e})
	}
	return entries, nil
}

// Accounts returns all holding accounts of given owner.
func Accounts(l *app.Ledger, owner swapchain.Address) ([]AccountEntry, error) {
	models, err := l.Query("/accounts/owner", owner)
	if err != nil {
		return nil, err
	}
	entries := make([]AccountEntry, 0, len(models))
	for _, m := range models {
		var a cash.Account
		if err := load(m, &a); err != nil {
			return nil, err
		}
		entries = append(entries, AccountEntry{Address: m.Key, Account: &a})
	}
	return entries, nil
}

// Balance returns the balance of the associated account of owner or zero
// if it does not exist.
func Balance(l *app.Ledger, owner swapchain.Address, asset string) (uint64, error) {
	models, err := l.Query("/accounts", cash.AssociatedAddress(owner, asset))
	if err != nil {
		return 0, err
	}
	if len(models) == 0 {
		return 0, nil
	}
	var a cash.Account
	if err := load(models[0], &a); err != nil {
		return 0, err
	}
	return a.Balance, nil
}

func load(m swapchain.Model, dest orm.Model) error {
	if err := dest.Unmarshal(m.Value); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %X: %s", m.Key, err)
	}
	return nil
}
