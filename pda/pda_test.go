package pda

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/crypto"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/swaptest/assert"
)

var testProgram = ProgramID{1, 2, 3, 4, 5, 6, 7, 8, 9}

func TestFindAddressIsDeterministic(t *testing.T) {
	maker := bytes.Repeat([]byte{0xAA}, 20)
	seed := make([]byte, 8)
	binary.LittleEndian.PutUint64(seed, 7)

	k1, b1, err := FindAddress(testProgram, []byte("escrow"), maker, seed)
	assert.Nil(t, err)
	k2, b2, err := FindAddress(testProgram, []byte("escrow"), maker, seed)
	assert.Nil(t, err)
	assert.Equal(t, k1, k2)
	assert.Equal(t, b1, b2)

	if IsOnCurve(k1[:]) {
		t.Fatal("derived key must be off the curve")
	}

	binary.LittleEndian.PutUint64(seed, 8)
	k3, _, err := FindAddress(testProgram, []byte("escrow"), maker, seed)
	assert.Nil(t, err)
	if k1 == k3 {
		t.Fatal("different seed must derive a different key")
	}

	other := ProgramID{9}
	k4, _, err := FindAddress(other, []byte("escrow"), maker, []byte{7, 0, 0, 0, 0, 0, 0, 0})
	assert.Nil(t, err)
	if k1 == k4 {
		t.Fatal("different program must derive a different key")
	}
}

func TestFindAddressReturnsFirstValidBump(t *testing.T) {
	for i := 0; i < 20; i++ {
		seed := []byte{byte(i)}
		key, bump, err := FindAddress(testProgram, []byte("vault"), seed)
		assert.Nil(t, err)

		// every greater bump must have been rejected
		for b := 255; b > int(bump); b-- {
			_, err := CreateAddress(testProgram, []byte("vault"), seed, []byte{byte(b)})
			assert.IsErr(t, errors.ErrInput, err)
		}
		got, err := CreateAddress(testProgram, []byte("vault"), seed, []byte{bump})
		assert.Nil(t, err)
		assert.Equal(t, key, got)
	}
}

func TestCreateAddressRejectsOnCurve(t *testing.T) {
	var rejected int
	for i := 0; i < 64; i++ {
		seeds := [][]byte{[]byte("curve"), {byte(i)}}
		_, err := CreateAddress(testProgram, seeds...)
		if err != nil {
			assert.IsErr(t, errors.ErrInput, err)
			if d := digest(testProgram, seeds); !IsOnCurve(d[:]) {
				t.Fatal("only on curve digests may be rejected")
			}
			rejected++
		}
	}
	if rejected == 0 {
		t.Fatal("about half of all digests are expected on the curve")
	}

	pub := crypto.GenPrivKeyEd25519().PublicKey()
	if !IsOnCurve(pub.Ed25519) {
		t.Fatal("a public key must be on the curve")
	}
}

func TestCreateAddressLimits(t *testing.T) {
	_, err := CreateAddress(testProgram, make([]byte, MaxSeedLength+1))
	assert.IsErr(t, errors.ErrInput, err)

	tooMany := make([][]byte, MaxSeeds+1)
	_, err = CreateAddress(testProgram, tooMany...)
	assert.IsErr(t, errors.ErrInput, err)

	// the bump needs one seed slot
	_, _, err = FindAddress(testProgram, make([][]byte, MaxSeeds)...)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestProofVerify(t *testing.T) {
	proof, key, err := NewProof(testProgram, []byte("auth"))
	assert.Nil(t, err)

	cases := map[string]struct {
		program ProgramID
		proof   Proof
		key     Key
		want    bool
	}{
		"valid": {
			program: testProgram,
			proof:   proof,
			key:     key,
			want:    true,
		},
		"other program": {
			program: ProgramID{42},
			proof:   proof,
			key:     key,
			want:    false,
		},
		"other bump": {
			program: testProgram,
			proof:   Proof{Seeds: proof.Seeds, Bump: proof.Bump - 1},
			key:     key,
			want:    false,
		},
		"other seeds": {
			program: testProgram,
			proof:   Proof{Seeds: [][]byte{[]byte("vault")}, Bump: proof.Bump},
			key:     key,
			want:    false,
		},
		"other key": {
			program: testProgram,
			proof:   proof,
			key:     Key{1},
			want:    false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.proof.Verify(tc.program, tc.key))
		})
	}
}

func TestKeyCondition(t *testing.T) {
	_, key, err := NewProof(testProgram, []byte("auth"))
	assert.Nil(t, err)
	assert.Nil(t, key.Condition().Validate())
	assert.Nil(t, key.Address().Validate())

	// a user key with the same bytes maps to a different address
	user := crypto.PublicKey{Ed25519: key[:]}
	if user.Address().Equals(key.Address()) {
		t.Fatal("derived and user address spaces must not collide")
	}

	assert.Equal(t, true, IsKeyCondition(key.Condition()))
	assert.Equal(t, false, IsKeyCondition(user.Condition()))
	assert.Equal(t, false, IsKeyCondition(swapchain.NewCondition("pda", "other", key[:])))
	assert.Equal(t, false, IsKeyCondition(swapchain.Condition("no condition")))
}

func TestProgramIDJSON(t *testing.T) {
	raw, err := json.Marshal(testProgram)
	assert.Nil(t, err)

	var got ProgramID
	assert.Nil(t, json.Unmarshal(raw, &got))
	assert.Equal(t, testProgram, got)

	assert.IsErr(t, errors.ErrInput, json.Unmarshal([]byte(`"CAFE"`), &got))
	_, err = ParseProgramID("zz")
	assert.IsErr(t, errors.ErrInput, err)
}
