package sigs

import (
	"testing"

	"github.com/iov-one/swapchain/crypto"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/store"
	"github.com/iov-one/swapchain/swaptest/assert"
)

func TestBuildSignBytes(t *testing.T) {
	cases := map[string]struct {
		chainID string
		seq     int64
		wantErr *errors.Error
	}{
		"valid":             {chainID: "test-chain", seq: 7},
		"negative sequence": {chainID: "test-chain", seq: -1, wantErr: ErrInvalidSequence},
		"short chain id":    {chainID: "abc", seq: 1, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			bz, err := BuildSignBytes([]byte("payload"), tc.chainID, tc.seq)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && len(bz) != 64 {
				t.Fatalf("want sha512 output, got %d bytes", len(bz))
			}
		})
	}

	a, err := BuildSignBytes([]byte("payload"), "test-chain", 1)
	assert.Nil(t, err)
	b, err := BuildSignBytes([]byte("payload"), "test-chain", 2)
	assert.Nil(t, err)
	c, err := BuildSignBytes([]byte("payload"), "other-chain", 1)
	assert.Nil(t, err)
	if string(a) == string(b) || string(a) == string(c) {
		t.Fatal("sign bytes must depend on sequence and chain id")
	}
}

func TestVerifySignature(t *testing.T) {
	const chainID = "test-chain"

	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	other := crypto.GenPrivKeyEd25519()

	tx := NewStdTx([]byte("foo"))
	sig0, err := SignTx(priv, tx, chainID, 0)
	assert.Nil(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	assert.Nil(t, err)
	forged, err := SignTx(other, tx, chainID, 0)
	assert.Nil(t, err)
	forged.Pubkey = pub
	wrongChain, err := SignTx(priv, tx, "other-chain", 0)
	assert.Nil(t, err)

	db := store.MemStore()
	bz, err := tx.GetSignBytes()
	assert.Nil(t, err)

	_, err = VerifySignature(db, forged, bz, chainID)
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("forged signature accepted: %v", err)
	}
	_, err = VerifySignature(db, wrongChain, bz, chainID)
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("signature for another chain accepted: %v", err)
	}
	_, err = VerifySignature(db, sig1, bz, chainID)
	if !ErrInvalidSequence.Is(err) {
		t.Fatalf("sequence gap accepted: %v", err)
	}

	cond, err := VerifySignature(db, sig0, bz, chainID)
	assert.Nil(t, err)
	assert.Equal(t, pub.Condition(), cond)

	// replay must fail
	_, err = VerifySignature(db, sig0, bz, chainID)
	if !ErrInvalidSequence.Is(err) {
		t.Fatalf("replay accepted: %v", err)
	}

	seq, err := NextSequence(db, pub)
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	cond, err = VerifySignature(db, sig1, bz, chainID)
	assert.Nil(t, err)
	assert.Equal(t, pub.Condition(), cond)
}

func TestVerifyTxSignatures(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()

	a := crypto.GenPrivKeyEd25519()
	b := crypto.GenPrivKeyEd25519()

	tx := NewStdTx([]byte("multi"))
	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(signers))

	sa, err := SignTx(a, tx, chainID, 0)
	assert.Nil(t, err)
	sb, err := SignTx(b, tx, chainID, 0)
	assert.Nil(t, err)
	tx.Signatures = []*StdSignature{sa, sb}

	signers, err = VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(signers))
	assert.Equal(t, a.PublicKey().Condition(), signers[0])
	assert.Equal(t, b.PublicKey().Condition(), signers[1])

	// the same signatures cannot be used twice
	_, err = VerifyTxSignatures(db, tx, chainID)
	if !ErrInvalidSequence.Is(err) {
		t.Fatalf("want invalid sequence, got %v", err)
	}
}

func TestVerifyTxSignaturesRejectsRepeatedSigner(t *testing.T) {
	const chainID = "test-chain"
	db := store.MemStore()
	key := crypto.GenPrivKeyEd25519()

	tx := NewStdTx([]byte("twice"))
	first, err := SignTx(key, tx, chainID, 0)
	assert.Nil(t, err)
	second, err := SignTx(key, tx, chainID, 1)
	assert.Nil(t, err)
	tx.Signatures = []*StdSignature{first, second}

	_, err = VerifyTxSignatures(db, tx, chainID)
	if !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %v", err)
	}
	seq, err := NextSequence(db, key.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)
}
