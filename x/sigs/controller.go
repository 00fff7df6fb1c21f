package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/crypto"
	"github.com/iov-one/swapchain/errors"
)

// SignCodeV1 prefixes every signed payload.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and returns the
// signer conditions in signature order. Each key may sign once per
// transaction. The sequence of every signer is incremented in store.
func VerifyTxSignatures(store swapchain.KVStore, tx SignedTx, chainID string) ([]swapchain.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]swapchain.Condition, 0, len(sigs))
	seen := make(map[string]struct{}, len(sigs))
	for i, sig := range sigs {
		if sig != nil && sig.Pubkey != nil {
			key := string(sig.Pubkey.Condition())
			if _, dup := seen[key]; dup {
				return nil, errors.Wrapf(errors.ErrDuplicate, "signature %d: signer %s", i, sig.Pubkey.Condition())
			}
			seen[key] = struct{}{}
		}
		cond, err := VerifySignature(store, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

// VerifySignature checks a single signature over payload and consumes
// the signer sequence. The returned condition is the signer's user key.
func VerifySignature(db swapchain.KVStore, sig *StdSignature, payload []byte, chainID string) (swapchain.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	users := NewBucket()
	user, err := users.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := users.Save(db, user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest that a key signs:
//
//	SignCodeV1 | uint8 len(chainID) | chainID | uint64 big endian seq | payload
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !swapchain.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{uint8(len(chainID))})
	h.Write([]byte(chainID))
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	h.Write(nonce[:])
	h.Write(payload)
	return h.Sum(nil), nil
}

// BuildSignBytesTx is BuildSignBytes over the payload of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(payload, chainID, seq)
}

// SignTx signs tx with signer at sequence seq.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	raw, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: raw, Sequence: seq}, nil
}

// NextSequence returns the sequence the next signature of pubkey must
// carry.
func NextSequence(db swapchain.ReadOnlyKVStore, pubkey *crypto.PublicKey) (int64, error) {
	user, err := NewBucket().GetOrCreate(db, pubkey)
	if err != nil {
		return 0, err
	}
	return user.Sequence, nil
}
