package sigs

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/crypto"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/orm"
	amino "github.com/tendermint/go-amino"
)

// BucketName holds one record per signing key.
const BucketName = "sigs"

var cdc = amino.NewCodec()

// UserData keeps the public key and the replay protection counter of a
// signer.
type UserData struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, u)
}

func (u *UserData) Validate() error {
	var errs error
	if seq := u.Sequence; seq < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	} else if seq > 0 && u.Pubkey == nil {
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey"))
	}
	if u.Pubkey != nil {
		errs = errors.AppendField(errs, "Pubkey", u.Pubkey.Validate())
	}
	return errs
}

// CheckAndIncrementSequence consumes expected if it is the current
// sequence. Sequences stay below 2^53 so JSON clients can read them.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	const maxSequence = 1<<53 - 1
	switch {
	case u.Sequence != expected:
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	case u.Sequence < 0 || u.Sequence >= maxSequence:
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// SetPubkey sets the key of a fresh record. A record never changes its
// key, so resetting one panics.
func (u *UserData) SetPubkey(pubkey *crypto.PublicKey) {
	if u.Pubkey != nil {
		panic("pubkey already set")
	}
	u.Pubkey = pubkey
}

// Bucket stores one UserData per signer address.
type Bucket struct {
	orm.ModelBucket
}

func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName, &UserData{})}
}

// GetOrCreate loads the record of pubkey, or returns a fresh one at
// sequence zero. Nothing is written.
func (b Bucket) GetOrCreate(db swapchain.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	err := b.One(db, pubkey.Address(), &user)
	if errors.ErrNotFound.Is(err) {
		return &UserData{Pubkey: pubkey}, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Save stores user under the address of its key.
func (b Bucket) Save(db swapchain.KVStore, user *UserData) error {
	if user.Pubkey == nil {
		return errors.Wrap(errors.ErrModel, "missing public key")
	}
	return b.Put(db, user.Pubkey.Address(), user)
}
