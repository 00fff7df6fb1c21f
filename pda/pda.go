/*
Package pda derives program addresses: deterministic 32 byte keys computed
from a program id and a list of seeds that provably have no private key.

An address is the sha256 digest of all seeds, the program id and a fixed
marker. A digest that decodes to a valid ed25519 curve point could have a
private key and is rejected. FindAddress appends a single bump byte to the
seeds, trying 255 down to 0, and returns the first digest off the curve.

The Proof type carries the seeds and bump that derive an address. Anyone
knowing the program id can check it with Proof.Verify without any signature.
*/
package pda

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"filippo.io/edwards25519"
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
)

const (
	// MaxSeeds is the maximum number of seeds, including the bump.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32
	// KeySize is the length of both program ids and derived keys.
	KeySize = 32
)

var marker = []byte("ProgramDerivedAddress")

// ProgramID identifies the program that owns derived addresses.
type ProgramID [KeySize]byte

// ParseProgramID decodes a hex encoded program id.
func ParseProgramID(s string) (ProgramID, error) {
	var p ProgramID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return p, errors.Wrap(errors.ErrInput, "program id is not hex")
	}
	if len(raw) != KeySize {
		return p, errors.Wrapf(errors.ErrInput, "program id must be %d bytes", KeySize)
	}
	copy(p[:], raw)
	return p, nil
}

func (p ProgramID) String() string {
	return strings.ToUpper(hex.EncodeToString(p[:]))
}

// MarshalJSON encodes the program id as a hex string.
func (p ProgramID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a hex string.
func (p *ProgramID) UnmarshalJSON(raw []byte) error {
	s := strings.Trim(string(raw), `"`)
	id, err := ParseProgramID(s)
	if err != nil {
		return err
	}
	*p = id
	return nil
}

// Key is a program derived key.
type Key [KeySize]byte

func (k Key) String() string {
	return strings.ToUpper(hex.EncodeToString(k[:]))
}

const (
	conditionExt  = "pda"
	conditionType = "key"
)

// Condition returns the condition representing this key on the ledger.
// User keys produce sigs conditions, so both spaces never collide.
func (k Key) Condition() swapchain.Condition {
	return swapchain.NewCondition(conditionExt, conditionType, k[:])
}

// IsKeyCondition returns true if given condition represents a program
// derived key.
func IsKeyCondition(c swapchain.Condition) bool {
	ext, typ, _, err := c.Parse()
	return err == nil && ext == conditionExt && typ == conditionType
}

// Address returns the ledger address of this key.
func (k Key) Address() swapchain.Address {
	return k.Condition().Address()
}

// CreateAddress computes the key for given program and seeds. It fails with
// ErrInput if the seeds are out of bounds or the result lies on the ed25519
// curve.
func CreateAddress(program ProgramID, seeds ...[]byte) (Key, error) {
	if err := validateSeeds(seeds, MaxSeeds); err != nil {
		return Key{}, err
	}
	key := digest(program, seeds)
	if IsOnCurve(key[:]) {
		return Key{}, errors.Wrap(errors.ErrInput, "derived address is on the curve")
	}
	return key, nil
}

func validateSeeds(seeds [][]byte, max int) error {
	if len(seeds) > max {
		return errors.Wrapf(errors.ErrInput, "at most %d seeds allowed", max)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(errors.ErrInput, "seed %d longer than %d bytes", i, MaxSeedLength)
		}
	}
	return nil
}

// FindAddress returns the first valid key for given seeds, trying bump
// values from 255 down to 0, together with the bump used.
func FindAddress(program ProgramID, seeds ...[]byte) (Key, uint8, error) {
	if err := validateSeeds(seeds, MaxSeeds-1); err != nil {
		return Key{}, 0, err
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		if key := digest(program, withBump); !IsOnCurve(key[:]) {
			return key, uint8(bump), nil
		}
	}
	return Key{}, 0, errors.Wrap(errors.ErrState, "unable to find a valid bump")
}

// IsOnCurve returns true if given bytes are a valid compressed ed25519
// point.
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

func digest(program ProgramID, seeds [][]byte) Key {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write(program[:])
	h.Write(marker)

	var key Key
	copy(key[:], h.Sum(nil))
	return key
}

// Proof is a capability that authorizes actions of a derived address. It
// holds the seeds and the bump that derive the address.
type Proof struct {
	Seeds [][]byte
	Bump  uint8
}

// NewProof finds the bump for given seeds and returns the proof together
// with the derived key.
func NewProof(program ProgramID, seeds ...[]byte) (Proof, Key, error) {
	key, bump, err := FindAddress(program, seeds...)
	if err != nil {
		return Proof{}, Key{}, err
	}
	cpy := make([][]byte, len(seeds))
	for i, s := range seeds {
		cpy[i] = append([]byte(nil), s...)
	}
	return Proof{Seeds: cpy, Bump: bump}, key, nil
}

// Key returns the key derived by this proof for given program.
func (p Proof) Key(program ProgramID) (Key, error) {
	seeds := make([][]byte, len(p.Seeds)+1)
	copy(seeds, p.Seeds)
	seeds[len(p.Seeds)] = []byte{p.Bump}
	return CreateAddress(program, seeds...)
}

// Verify returns true if the proof derives given key for given program.
func (p Proof) Verify(program ProgramID, key Key) bool {
	derived, err := p.Key(program)
	if err != nil {
		return false
	}
	return bytes.Equal(derived[:], key[:])
}
