package store

import (
	"github.com/iov-one/swapchain/errors"
)

// SliceIterator walks a fixed, already ordered list of models.
type SliceIterator struct {
	data []Model
	pos  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool { return s.pos < len(s.data) }

func (s *SliceIterator) Next() error {
	if s.pos >= len(s.data) {
		return errors.Wrap(errors.ErrDatabase, "passed end of slice")
	}
	s.pos++
	return nil
}

func (s *SliceIterator) Key() []byte   { return s.data[s.pos].Key }
func (s *SliceIterator) Value() []byte { return s.data[s.pos].Value }
func (s *SliceIterator) Close()        { s.data = nil }

// EmptyKVStore holds nothing and drops every write. It is the bottom
// layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error)  { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)    { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete([]byte) error         { return nil }
func (e EmptyKVStore) NewBatch() Batch           { return NewNonAtomicBatch(e) }
func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a single buffered write: a delete when remove is set, a set
// otherwise.
type Op struct {
	key    []byte
	value  []byte
	remove bool
}

// Apply performs the write on out.
func (o Op) Apply(out SetDeleter) error {
	if o.remove {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch replays its writes one by one on Write. It only suits
// in-memory stores, where a replay cannot fail half way.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, Op{key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{key: key, remove: true})
	return nil
}

// Write applies the buffered writes in order and empties the batch.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = nil
	return nil
}
