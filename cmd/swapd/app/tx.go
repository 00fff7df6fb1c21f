package swapd

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/x/cash"
	"github.com/iov-one/swapchain/x/sigs"
	"github.com/iov-one/swapchain/x/swap"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterCodec(cdc)
}

// RegisterCodec registers the message interface and every message type this
// application accepts.
func RegisterCodec(c *amino.Codec) {
	c.RegisterInterface((*swapchain.Msg)(nil), nil)
	cash.RegisterCodec(c)
	swap.RegisterCodec(c)
}

// Tx carries a single message together with the signatures of its
// signers.
type Tx struct {
	Msg        swapchain.Msg        `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

// make sure tx fulfills all interfaces
var _ swapchain.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (swapchain.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return bz, nil
}

func (tx *Tx) Unmarshal(bz []byte) error {
	if err := cdc.UnmarshalBinaryBare(bz, tx); err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	return nil
}

// GetMsg returns the transaction message.
func (tx *Tx) GetMsg() (swapchain.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// the sign bytes come from the data itself, not previous signatures
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}
