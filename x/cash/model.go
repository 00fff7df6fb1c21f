package cash

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/coin"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the accounts
const BucketName = "cash"

var cdc = amino.NewCodec()

// Account is a holding account of a single asset.
type Account struct {
	Owner   swapchain.Address `json:"owner"`
	Asset   string            `json:"asset"`
	Balance uint64            `json:"balance"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Account) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	errs = errors.AppendField(errs, "Asset", coin.ValidateTicker(a.Asset))
	return errs
}

// Coin returns the balance of the account as a coin.
func (a *Account) Coin() coin.Coin {
	return coin.NewCoin(a.Balance, a.Asset)
}

// AssociatedAddress returns the address of the account holding given asset
// on behalf of given owner. The owner is length prefixed so that no pair of
// owner and asset encodes like another one.
func AssociatedAddress(owner swapchain.Address, asset string) swapchain.Address {
	data := make([]byte, 0, 1+len(owner)+len(asset))
	data = append(data, uint8(len(owner)))
	data = append(data, owner...)
	data = append(data, asset...)
	return swapchain.NewCondition("cash", "assoc", data).Address()
}

func ownerIndexer(m orm.Model) ([]byte, error) {
	a, ok := m.(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return a.Owner, nil
}

// NewBucket returns a bucket storing accounts, indexed by owner.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Account{},
		orm.WithIndex("owner", ownerIndexer, false))
}
