package cash

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/coin"
	"github.com/iov-one/swapchain/errors"
	amino "github.com/tendermint/go-amino"
)

const maxMemoSize int = 128

// RegisterCodec registers the messages of this extension, so that a
// transaction can carry them as swapchain.Msg.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&SendMsg{}, "cash/send", nil)
	c.RegisterConcrete(&CreateAccountMsg{}, "cash/create_account", nil)
}

// SendMsg moves funds between two holding accounts of the same asset.
type SendMsg struct {
	Source      swapchain.Address `json:"source"`
	Destination swapchain.Address `json:"destination"`
	Amount      uint64            `json:"amount"`
	Memo        string            `json:"memo,omitempty"`
}

var _ swapchain.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "too long"))
	}
	return errs
}

// CreateAccountMsg opens the associated account of given owner for an
// asset.
type CreateAccountMsg struct {
	Owner swapchain.Address `json:"owner"`
	Asset string            `json:"asset"`
}

var _ swapchain.Msg = (*CreateAccountMsg)(nil)

// Path returns the routing path for this message
func (CreateAccountMsg) Path() string {
	return "cash/create_account"
}

func (m *CreateAccountMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateAccountMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func (m *CreateAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Asset", coin.ValidateTicker(m.Asset))
	return errs
}
