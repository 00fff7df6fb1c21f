package swap

import (
	"encoding/binary"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/pda"
)

var (
	authSeed   = []byte("auth")
	escrowSeed = []byte("escrow")
	vaultSeed  = []byte("vault")
)

// Program derives the addresses used by the swap extension. It is
// configured once, at application start.
type Program struct {
	id pda.ProgramID
}

// NewProgram returns a program deriving addresses for given id.
func NewProgram(id pda.ProgramID) Program {
	return Program{id: id}
}

// ID returns the program id.
func (p Program) ID() pda.ProgramID {
	return p.id
}

// Addresses groups the derived ledger addresses of a single escrow.
type Addresses struct {
	Escrow    swapchain.Address
	Vault     swapchain.Address
	Authority swapchain.Address

	EscrowBump uint8
	VaultBump  uint8
	AuthBump   uint8
}

// Derive searches the bumps and returns the addresses of the escrow opened
// by maker with given seed.
func (p Program) Derive(maker swapchain.Address, seed uint64) (*Addresses, error) {
	if err := maker.Validate(); err != nil {
		return nil, errors.Wrap(err, "maker")
	}
	authKey, authBump, err := pda.FindAddress(p.id, authSeed)
	if err != nil {
		return nil, errors.Wrap(err, "authority")
	}
	escrowKey, escrowBump, err := pda.FindAddress(p.id, escrowSeed, maker, le64(seed))
	if err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	vaultKey, vaultBump, err := pda.FindAddress(p.id, vaultSeed, escrowKey[:])
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	return &Addresses{
		Escrow:     escrowKey.Address(),
		Vault:      vaultKey.Address(),
		Authority:  authKey.Address(),
		EscrowBump: escrowBump,
		VaultBump:  vaultBump,
		AuthBump:   authBump,
	}, nil
}

// Rebuild recomputes the addresses of an existing escrow from its stored
// bumps, without searching.
func (p Program) Rebuild(e *Escrow) (*Addresses, error) {
	authKey, err := pda.CreateAddress(p.id, authSeed, []byte{e.AuthBump})
	if err != nil {
		return nil, errors.Wrap(err, "authority")
	}
	escrowKey, err := pda.CreateAddress(p.id, escrowSeed, e.Maker, le64(e.Seed), []byte{e.EscrowBump})
	if err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	vaultKey, err := pda.CreateAddress(p.id, vaultSeed, escrowKey[:], []byte{e.VaultBump})
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	return &Addresses{
		Escrow:     escrowKey.Address(),
		Vault:      vaultKey.Address(),
		Authority:  authKey.Address(),
		EscrowBump: e.EscrowBump,
		VaultBump:  e.VaultBump,
		AuthBump:   e.AuthBump,
	}, nil
}

// AuthorityProof returns the capability that authorizes the program
// authority derived with given bump.
func AuthorityProof(bump uint8) pda.Proof {
	return pda.Proof{Seeds: [][]byte{authSeed}, Bump: bump}
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
