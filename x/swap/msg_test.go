package swap

import (
	"testing"

	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/swaptest"
	"github.com/iov-one/swapchain/swaptest/assert"
)

func TestMakeMsgValidate(t *testing.T) {
	maker := swaptest.NewAddress()

	cases := map[string]struct {
		msg      *MakeMsg
		wantErrs map[string]*errors.Error
	}{
		"valid": {
			msg: &MakeMsg{Maker: maker, MakerAsset: "AAA", TakerAsset: "BBB", DepositAmount: 1, OfferAmount: 2},
			wantErrs: map[string]*errors.Error{
				"Maker":         nil,
				"MakerAsset":    nil,
				"TakerAsset":    nil,
				"DepositAmount": nil,
				"OfferAmount":   nil,
				"MakerAccount":  nil,
			},
		},
		"everything missing": {
			msg: &MakeMsg{},
			wantErrs: map[string]*errors.Error{
				"Maker":         errors.ErrInput,
				"MakerAsset":    errors.ErrEmpty,
				"TakerAsset":    errors.ErrEmpty,
				"DepositAmount": errors.ErrAmount,
				"OfferAmount":   errors.ErrAmount,
				"MakerAccount":  nil,
			},
		},
		"invalid optional account": {
			msg: &MakeMsg{Maker: maker, MakerAsset: "AAA", TakerAsset: "bb", DepositAmount: 1, OfferAmount: 2, MakerAccount: maker[:5]},
			wantErrs: map[string]*errors.Error{
				"TakerAsset":   errors.ErrCurrency,
				"MakerAccount": errors.ErrInput,
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestTakeMsgValidate(t *testing.T) {
	addr := swaptest.NewAddress()

	err := (&TakeMsg{Escrow: addr, MakerAsset: "AAA", TakerAsset: "BBB"}).Validate()
	assert.Nil(t, err)

	err = (&TakeMsg{Taker: addr[:3], Vault: addr[:1], Authority: addr[:2]}).Validate()
	assert.FieldError(t, err, "Escrow", errors.ErrInput)
	assert.FieldError(t, err, "Taker", errors.ErrInput)
	assert.FieldError(t, err, "MakerAsset", errors.ErrEmpty)
	assert.FieldError(t, err, "TakerAsset", errors.ErrEmpty)
	assert.FieldError(t, err, "TakerPayAccount", nil)
	assert.FieldError(t, err, "Vault", errors.ErrInput)
	assert.FieldError(t, err, "Authority", errors.ErrInput)
}

func TestRefundMsgValidate(t *testing.T) {
	addr := swaptest.NewAddress()
	assert.Nil(t, (&RefundMsg{Escrow: addr}).Validate())

	err := (&RefundMsg{MakerAccount: addr[:4]}).Validate()
	assert.FieldError(t, err, "Escrow", errors.ErrInput)
	assert.FieldError(t, err, "MakerAccount", errors.ErrInput)
	assert.FieldError(t, err, "Vault", nil)
}

func TestMsgSerialization(t *testing.T) {
	msg := &MakeMsg{
		Maker:         swaptest.NewAddress(),
		MakerAsset:    "AAA",
		TakerAsset:    "BBB",
		DepositAmount: 1000,
		OfferAmount:   50,
		Seed:          7,
		MakerAccount:  swaptest.NewAddress(),
	}
	raw, err := msg.Marshal()
	assert.Nil(t, err)
	var got MakeMsg
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, msg, &got)
}
