package swap

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/coin"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the escrows
const BucketName = "escrow"

var cdc = amino.NewCodec()

// Escrow is an open offer. It is created by Make and removed by either
// Take or Refund. No handler modifies it.
type Escrow struct {
	Maker      swapchain.Address `json:"maker"`
	MakerAsset string            `json:"maker_asset"`
	TakerAsset string            `json:"taker_asset"`
	// Amount of the maker asset held by the vault.
	Amount uint64 `json:"amount"`
	// OfferAmount of the taker asset that the taker must pay.
	OfferAmount uint64 `json:"offer_amount"`
	Seed        uint64 `json:"seed"`

	AuthBump   uint8 `json:"auth_bump"`
	VaultBump  uint8 `json:"vault_bump"`
	EscrowBump uint8 `json:"escrow_bump"`
}

var _ orm.Model = (*Escrow)(nil)

func (e *Escrow) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(e)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, e)
}

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Maker", e.Maker.Validate())
	errs = errors.AppendField(errs, "MakerAsset", coin.ValidateTicker(e.MakerAsset))
	errs = errors.AppendField(errs, "TakerAsset", coin.ValidateTicker(e.TakerAsset))
	if e.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	if e.OfferAmount == 0 {
		errs = errors.Append(errs, errors.Field("OfferAmount", errors.ErrAmount, "must be positive"))
	}
	return errs
}

// NewBucket returns a bucket storing escrows under their derived address.
// Escrows are indexed by maker and by both assets.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{},
		orm.WithIndex("maker", makerIndexer, false),
		orm.WithIndex("maker_asset", makerAssetIndexer, false),
		orm.WithIndex("taker_asset", takerAssetIndexer, false),
	)
}

func asEscrow(m orm.Model) (*Escrow, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return e, nil
}

func makerIndexer(m orm.Model) ([]byte, error) {
	e, err := asEscrow(m)
	if err != nil {
		return nil, err
	}
	return e.Maker, nil
}

func makerAssetIndexer(m orm.Model) ([]byte, error) {
	e, err := asEscrow(m)
	if err != nil {
		return nil, err
	}
	return []byte(e.MakerAsset), nil
}

func takerAssetIndexer(m orm.Model) ([]byte, error) {
	e, err := asEscrow(m)
	if err != nil {
		return nil, err
	}
	return []byte(e.TakerAsset), nil
}
