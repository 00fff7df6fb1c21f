package crypto

import (
	"bytes"
	"testing"

	swapchain "github.com/iov-one/swapchain"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()

	msg := []byte("make 1000 ALPHA for 50 BETA")
	sig, err := priv.Sign(msg)
	if err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	if !pub.Verify(msg, sig) {
		t.Fatal("signature must be valid")
	}
	if pub.Verify([]byte("other message"), sig) {
		t.Fatal("signature must not match other message")
	}

	other := GenPrivKeyEd25519().PublicKey()
	if other.Verify(msg, sig) {
		t.Fatal("signature must not match other key")
	}
	if (&PublicKey{Ed25519: []byte{1, 2}}).Verify(msg, sig) {
		t.Fatal("malformed key must not verify")
	}
}

func TestKeyFromSeedIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	if !a.PublicKey().Equals(b.PublicKey()) {
		t.Fatal("same seed must produce the same key")
	}
}

func TestCondition(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	cond := pub.Condition()
	ext, typ, data, err := cond.Parse()
	if err != nil {
		t.Fatalf("cannot parse condition: %s", err)
	}
	if ext != ExtensionName || typ != "ed25519" || !bytes.Equal(data, pub.Ed25519) {
		t.Fatalf("unexpected condition: %s", cond)
	}
	if !pub.Address().Equals(swapchain.NewAddress(cond)) {
		t.Fatal("address must be derived from the condition")
	}
}
