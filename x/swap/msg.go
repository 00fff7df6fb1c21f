package swap

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/coin"
	"github.com/iov-one/swapchain/errors"
	amino "github.com/tendermint/go-amino"
)

const (
	pathMakeMsg   = "swap/make"
	pathTakeMsg   = "swap/take"
	pathRefundMsg = "swap/refund"
)

// RegisterCodec registers the messages of this extension, so that a
// transaction can carry them as swapchain.Msg.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&MakeMsg{}, pathMakeMsg, nil)
	c.RegisterConcrete(&TakeMsg{}, pathTakeMsg, nil)
	c.RegisterConcrete(&RefundMsg{}, pathRefundMsg, nil)
}

// MakeMsg opens an escrow. The maker deposits DepositAmount of MakerAsset
// and asks for OfferAmount of TakerAsset.
type MakeMsg struct {
	Maker         swapchain.Address `json:"maker"`
	MakerAsset    string            `json:"maker_asset"`
	TakerAsset    string            `json:"taker_asset"`
	DepositAmount uint64            `json:"deposit_amount"`
	OfferAmount   uint64            `json:"offer_amount"`
	Seed          uint64            `json:"seed"`
	// MakerAccount is the account funding the deposit. Defaults to the
	// associated account of the maker.
	MakerAccount swapchain.Address `json:"maker_account,omitempty"`
}

var _ swapchain.Msg = (*MakeMsg)(nil)

func (MakeMsg) Path() string {
	return pathMakeMsg
}

func (m *MakeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *MakeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *MakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Maker", m.Maker.Validate())
	errs = errors.AppendField(errs, "MakerAsset", coin.ValidateTicker(m.MakerAsset))
	errs = errors.AppendField(errs, "TakerAsset", coin.ValidateTicker(m.TakerAsset))
	if m.DepositAmount == 0 {
		errs = errors.Append(errs, errors.Field("DepositAmount", errors.ErrAmount, "must be positive"))
	}
	if m.OfferAmount == 0 {
		errs = errors.Append(errs, errors.Field("OfferAmount", errors.ErrAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "MakerAccount", validateOptional(m.MakerAccount))
	return errs
}

// TakeMsg completes an escrow. Every account is optional and defaults to
// the associated account of its owner.
type TakeMsg struct {
	Escrow swapchain.Address `json:"escrow"`
	// Taker defaults to the main signer.
	Taker      swapchain.Address `json:"taker,omitempty"`
	MakerAsset string            `json:"maker_asset"`
	TakerAsset string            `json:"taker_asset"`

	TakerPayAccount     swapchain.Address `json:"taker_pay_account,omitempty"`
	TakerReceiveAccount swapchain.Address `json:"taker_receive_account,omitempty"`
	MakerReceiveAccount swapchain.Address `json:"maker_receive_account,omitempty"`

	// Vault and Authority must match the derived addresses if set.
	Vault     swapchain.Address `json:"vault,omitempty"`
	Authority swapchain.Address `json:"authority,omitempty"`
}

var _ swapchain.Msg = (*TakeMsg)(nil)

func (TakeMsg) Path() string {
	return pathTakeMsg
}

func (m *TakeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *TakeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *TakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	errs = errors.AppendField(errs, "Taker", validateOptional(m.Taker))
	errs = errors.AppendField(errs, "MakerAsset", coin.ValidateTicker(m.MakerAsset))
	errs = errors.AppendField(errs, "TakerAsset", coin.ValidateTicker(m.TakerAsset))
	errs = errors.AppendField(errs, "TakerPayAccount", validateOptional(m.TakerPayAccount))
	errs = errors.AppendField(errs, "TakerReceiveAccount", validateOptional(m.TakerReceiveAccount))
	errs = errors.AppendField(errs, "MakerReceiveAccount", validateOptional(m.MakerReceiveAccount))
	errs = errors.AppendField(errs, "Vault", validateOptional(m.Vault))
	errs = errors.AppendField(errs, "Authority", validateOptional(m.Authority))
	return errs
}

// RefundMsg cancels an escrow and returns the deposit to the maker.
type RefundMsg struct {
	Escrow swapchain.Address `json:"escrow"`
	// MakerAccount defaults to the associated account of the maker.
	MakerAccount swapchain.Address `json:"maker_account,omitempty"`

	// Vault and Authority must match the derived addresses if set.
	Vault     swapchain.Address `json:"vault,omitempty"`
	Authority swapchain.Address `json:"authority,omitempty"`
}

var _ swapchain.Msg = (*RefundMsg)(nil)

func (RefundMsg) Path() string {
	return pathRefundMsg
}

func (m *RefundMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RefundMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *RefundMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	errs = errors.AppendField(errs, "MakerAccount", validateOptional(m.MakerAccount))
	errs = errors.AppendField(errs, "Vault", validateOptional(m.Vault))
	errs = errors.AppendField(errs, "Authority", validateOptional(m.Authority))
	return errs
}

func validateOptional(a swapchain.Address) error {
	if len(a) == 0 {
		return nil
	}
	return a.Validate()
}
