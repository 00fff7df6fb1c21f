package cash

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/coin"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/orm"
	"github.com/iov-one/swapchain/x"
)

// Controller is the functionality needed by other extensions to move funds
// between holding accounts.
type Controller interface {
	// Transfer moves amount from one account to another. The owner of the
	// source account must be authenticated in the context.
	Transfer(ctx context.Context, db swapchain.KVStore, from, to swapchain.Address, amount uint64) error

	// CreateAccount opens an empty account at given address. It fails if
	// an account already exists there.
	CreateAccount(db swapchain.KVStore, addr, owner swapchain.Address, asset string) (*Account, error)

	// EnsureAccount returns the account at given address, opening it if
	// it does not exist yet.
	EnsureAccount(db swapchain.KVStore, addr, owner swapchain.Address, asset string) (*Account, error)

	// CloseAccount removes an account. Any remaining balance is moved to
	// the destination account.
	CloseAccount(ctx context.Context, db swapchain.KVStore, addr, dest swapchain.Address) error

	// Issue credits an existing account with newly created funds.
	Issue(db swapchain.KVStore, addr swapchain.Address, amount uint64) error

	Balance(db swapchain.ReadOnlyKVStore, addr swapchain.Address) (uint64, error)
	Account(db swapchain.ReadOnlyKVStore, addr swapchain.Address) (*Account, error)
	AccountsByOwner(db swapchain.ReadOnlyKVStore, owner swapchain.Address) ([]Holding, error)
}

// Holding is an account together with its address.
type Holding struct {
	Address swapchain.Address `json:"address"`
	*Account
}

// BaseController is the default Controller implementation.
type BaseController struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller that authorizes withdrawals using
// given authenticator.
func NewController(auth x.Authenticator) BaseController {
	return BaseController{
		auth:   auth,
		bucket: NewBucket(),
	}
}

func (c BaseController) Transfer(ctx context.Context, db swapchain.KVStore, from, to swapchain.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero transfer")
	}
	if from.Equals(to) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same account")
	}
	src, err := c.Account(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := c.Account(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if src.Asset != dst.Asset {
		return errors.Wrapf(errors.ErrCurrency, "cannot move %s into %s account", src.Asset, dst.Asset)
	}
	if err := x.RequireAddress(ctx, c.auth, src.Owner, "source owner"); err != nil {
		return err
	}
	if src.Balance, err = coin.Sub(src.Balance, amount); err != nil {
		return err
	}
	if dst.Balance, err = coin.Add(dst.Balance, amount); err != nil {
		return err
	}
	if err := c.bucket.Put(db, from, src); err != nil {
		return errors.Wrap(err, "cannot save source")
	}
	if err := c.bucket.Put(db, to, dst); err != nil {
		return errors.Wrap(err, "cannot save destination")
	}
	return nil
}

func (c BaseController) CreateAccount(db swapchain.KVStore, addr, owner swapchain.Address, asset string) (*Account, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "account address")
	}
	switch err := c.bucket.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	acc := &Account{Owner: owner, Asset: asset}
	if err := c.bucket.Put(db, addr, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (c BaseController) EnsureAccount(db swapchain.KVStore, addr, owner swapchain.Address, asset string) (*Account, error) {
	acc, err := c.Account(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return c.CreateAccount(db, addr, owner, asset)
	case err != nil:
		return nil, err
	}
	if !acc.Owner.Equals(owner) || acc.Asset != asset {
		return nil, errors.Wrapf(errors.ErrState, "account %s belongs to %s and holds %s", addr, acc.Owner, acc.Asset)
	}
	return acc, nil
}

func (c BaseController) CloseAccount(ctx context.Context, db swapchain.KVStore, addr, dest swapchain.Address) error {
	acc, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if err := x.RequireAddress(ctx, c.auth, acc.Owner, "account owner"); err != nil {
		return err
	}
	if acc.Balance > 0 {
		if err := c.Transfer(ctx, db, addr, dest, acc.Balance); err != nil {
			return errors.Wrap(err, "cannot move remaining balance")
		}
	}
	return c.bucket.Delete(db, addr)
}

func (c BaseController) Issue(db swapchain.KVStore, addr swapchain.Address, amount uint64) error {
	acc, err := c.Account(db, addr)
	if err != nil {
		return err
	}
	if acc.Balance, err = coin.Add(acc.Balance, amount); err != nil {
		return err
	}
	return c.bucket.Put(db, addr, acc)
}

func (c BaseController) Balance(db swapchain.ReadOnlyKVStore, addr swapchain.Address) (uint64, error) {
	acc, err := c.Account(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (c BaseController) Account(db swapchain.ReadOnlyKVStore, addr swapchain.Address) (*Account, error) {
	var acc Account
	if err := c.bucket.One(db, addr, &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}

func (c BaseController) AccountsByOwner(db swapchain.ReadOnlyKVStore, owner swapchain.Address) ([]Holding, error) {
	idx, err := c.bucket.Index("owner")
	if err != nil {
		return nil, err
	}
	keys, err := idx.Keys(db, owner)
	if err != nil {
		return nil, err
	}
	res := make([]Holding, 0, len(keys))
	for _, k := range keys {
		acc, err := c.Account(db, k)
		if err != nil {
			return nil, err
		}
		res = append(res, Holding{Address: k, Account: acc})
	}
	return res, nil
}
