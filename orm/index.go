package orm

import (
	"bytes"
	"math"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
)

// Index entries live under
//
//	_x. | len name | name | len value | value | len key | key
//
// with an empty value, so all keys indexed under one value form a
// contiguous range. A length byte of 255 is never written and closes
// that range.
const nativeIdxPrefix = "_x."

// NewNativeIndex returns an Index kept in the same store as its bucket.
// dbKey maps a primary key to the key the bucket stores the entity at.
// The cash ledger uses it to list the accounts of an owner.
func NewNativeIndex(name string, indexer MultiKeyIndexer, unique bool, dbKey func([]byte) []byte) Index {
	return &nativeIndex{name: name, indexer: indexer, unique: unique, dbKey: dbKey}
}

type nativeIndex struct {
	name    string
	indexer MultiKeyIndexer
	unique  bool
	dbKey   func([]byte) []byte
}

var _ Index = (*nativeIndex)(nil)

func (ix *nativeIndex) Name() string { return ix.name }

func (ix *nativeIndex) Update(db swapchain.KVStore, key []byte, prev, next Model) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrInput, "update requires at least one non-nil model")
	}
	old, err := ix.values(prev)
	if err != nil {
		return err
	}
	cur, err := ix.values(next)
	if err != nil {
		return err
	}

	for _, v := range old {
		if contains(cur, v) {
			continue
		}
		entry, err := ix.entry(v, key)
		if err != nil {
			return err
		}
		if err := db.Delete(entry); err != nil {
			return errors.Wrap(err, "db delete")
		}
	}
	for _, v := range cur {
		if contains(old, v) {
			continue
		}
		if ix.unique {
			if err := ix.ensureFree(db, v, key); err != nil {
				return err
			}
		}
		entry, err := ix.entry(v, key)
		if err != nil {
			return err
		}
		if err := db.Set(entry, []byte{}); err != nil {
			return errors.Wrap(err, "db set")
		}
	}
	return nil
}

func (ix *nativeIndex) values(m Model) ([][]byte, error) {
	if m == nil {
		return nil, nil
	}
	vs, err := ix.indexer(m)
	return vs, errors.Wrap(err, "indexer")
}

func (ix *nativeIndex) entry(value, key []byte) ([]byte, error) {
	raw, err := packNativeIdxKey([][]byte{[]byte(ix.name), value, key})
	return raw, errors.Wrap(err, "build index key")
}

// ensureFree fails when value is already indexed for an entity other
// than key.
func (ix *nativeIndex) ensureFree(db swapchain.ReadOnlyKVStore, value, key []byte) error {
	taken, err := ix.Keys(db, value)
	if err != nil {
		return err
	}
	for _, k := range taken {
		if !bytes.Equal(k, key) {
			return errors.Wrapf(errors.ErrDuplicate, "%s index value already taken", ix.name)
		}
	}
	return nil
}

// Keys returns the primary keys indexed under value, in key order.
func (ix *nativeIndex) Keys(db swapchain.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	start, err := packNativeIdxKey([][]byte{[]byte(ix.name), value})
	if err != nil {
		return nil, errors.Wrap(err, "build index key")
	}
	end := append(append([]byte(nil), start...), math.MaxUint8)

	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var keys [][]byte
	for it.Valid() {
		parts, err := unpackNativeIdxKey(it.Key())
		if err != nil {
			return nil, errors.Wrap(err, "unpack native index key")
		}
		if len(parts) != 3 {
			return nil, errors.Wrap(errors.ErrDatabase, "malformed index key")
		}
		keys = append(keys, parts[2])
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// Query serves "/<bucket>/<index>" lookups. Only exact key queries are
// supported.
func (ix *nativeIndex) Query(db swapchain.ReadOnlyKVStore, mod string, data []byte) ([]swapchain.Model, error) {
	if mod != swapchain.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrHuman, "not implemented: %q", mod)
	}
	keys, err := ix.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]swapchain.Model, len(keys))
	for i, key := range keys {
		value, err := db.Get(ix.dbKey(key))
		if err != nil {
			return nil, errors.Wrapf(err, "cannot get %q value", key)
		}
		res[i] = swapchain.Model{Key: key, Value: value}
	}
	return res, nil
}

func contains(set [][]byte, v []byte) bool {
	for _, s := range set {
		if bytes.Equal(s, v) {
			return true
		}
	}
	return false
}

// packNativeIdxKey joins chunks, each preceded by its uint8 length. The
// chunks "aaa", "" and "c" give
//
//	_x.<3>aaa<0><1>c
func packNativeIdxKey(chunks [][]byte) ([]byte, error) {
	size := len(nativeIdxPrefix)
	for _, c := range chunks {
		if len(c) >= math.MaxUint8 {
			return nil, errors.Wrapf(errors.ErrInput, "no chunk can be bigger than %d bytes", math.MaxUint8-1)
		}
		size += 1 + len(c)
	}
	out := make([]byte, 0, size)
	out = append(out, nativeIdxPrefix...)
	for _, c := range chunks {
		out = append(out, uint8(len(c)))
		out = append(out, c...)
	}
	return out, nil
}

// unpackNativeIdxKey reverses packNativeIdxKey.
func unpackNativeIdxKey(raw []byte) ([][]byte, error) {
	if !bytes.HasPrefix(raw, []byte(nativeIdxPrefix)) {
		return nil, errors.Wrap(errors.ErrInput, "not a native index key")
	}
	rest := raw[len(nativeIdxPrefix):]
	var chunks [][]byte
	for len(rest) > 0 {
		n := int(rest[0])
		if len(rest) < 1+n {
			return nil, errors.Wrap(errors.ErrInput, "malformed offset")
		}
		chunks = append(chunks, rest[1:1+n])
		rest = rest[1+n:]
	}
	return chunks, nil
}
