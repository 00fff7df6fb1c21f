package swapd

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/app"
	"github.com/iov-one/swapchain/crypto"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/x/sigs"
)

// Sequence returns the sequence the next signature of given key must carry.
func Sequence(l *app.Ledger, pubkey *crypto.PublicKey) (int64, error) {
	models, err := l.Query("/auth", pubkey.Address())
	if err != nil {
		return 0, err
	}
	if len(models) == 0 {
		return 0, nil
	}
	var user sigs.UserData
	if err := user.Unmarshal(models[0].Value); err != nil {
		return 0, errors.Wrap(errors.ErrModel, err.Error())
	}
	return user.Sequence, nil
}

// SignAndSubmit signs a transaction carrying msg, checks and delivers it.
func SignAndSubmit(ctx context.Context, l *app.Ledger, signer crypto.Signer, msg swapchain.Msg) (*swapchain.DeliverResult, error) {
	seq, err := Sequence(l, signer.PublicKey())
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	tx := &Tx{Msg: msg}
	sig, err := sigs.SignTx(signer, tx, l.ChainID(), seq)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)

	raw, err := tx.Marshal()
	if err != nil {
		return nil, err
	}
	if _, err := l.CheckTx(ctx, raw); err != nil {
		return nil, err
	}
	return l.DeliverTx(ctx, raw)
}
