package bech32

import (
	"bytes"
	"testing"

	"github.com/iov-one/swapchain/errors"
)

func TestEncodeDecode(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 20)

	raw, err := Encode(HRP, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if !bytes.HasPrefix(raw, []byte(HRP+"1")) {
		t.Fatalf("unexpected prefix: %q", raw)
	}

	hrp, got, err := Decode(string(raw))
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != HRP {
		t.Fatalf("want %q hrp, got %q", HRP, hrp)
	}
	if !bytes.Equal(payload, got) {
		t.Logf("want %X", payload)
		t.Logf("got  %X", got)
		t.Fatal("invalid decode")
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, _, err := Decode("swap1notavalidchecksum")
	if !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}
