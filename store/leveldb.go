package store

import (
	"github.com/iov-one/swapchain/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDBStore is a KVStore persisted on disk using LevelDB. Batches written
// to it are applied atomically and synced before returning.
type LevelDBStore struct {
	db *leveldb.DB
}

var _ KVStore = (*LevelDBStore)(nil)

// OpenLevelDB opens or creates a database in the given directory.
func OpenLevelDB(dir string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open leveldb %q: %s", dir, err)
	}
	return &LevelDBStore{db: db}, nil
}

// Close releases the database. The store must not be used afterwards.
func (s *LevelDBStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// CacheWrap returns a btree cache that writes through a single atomic
// LevelDB batch.
func (s *LevelDBStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

func (s *LevelDBStore) Get(key []byte) ([]byte, error) {
	val, err := s.db.Get(key, nil)
	switch err {
	case nil:
		return val, nil
	case leveldb.ErrNotFound:
		return nil, nil
	default:
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
}

func (s *LevelDBStore) Has(key []byte) (bool, error) {
	ok, err := s.db.Has(key, nil)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

func (s *LevelDBStore) Set(key, value []byte) error {
	if err := s.db.Put(key, value, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (s *LevelDBStore) Delete(key []byte) error {
	if err := s.db.Delete(key, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (s *LevelDBStore) Iterator(start, end []byte) (Iterator, error) {
	it := s.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return newLevelDBIterator(it, false)
}

func (s *LevelDBStore) ReverseIterator(start, end []byte) (Iterator, error) {
	it := s.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return newLevelDBIterator(it, true)
}

func (s *LevelDBStore) NewBatch() Batch {
	return &levelDBBatch{db: s.db, batch: new(leveldb.Batch)}
}

type levelDBBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *levelDBBatch) Set(key, value []byte) error {
	b.batch.Put(key, value)
	return nil
}

func (b *levelDBBatch) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *levelDBBatch) Write() error {
	err := b.db.Write(b.batch, &opt.WriteOptions{Sync: true})
	b.batch.Reset()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// levelDBIterator adapts the LevelDB cursor. Key and value are copied since
// LevelDB reuses its buffers between moves.
type levelDBIterator struct {
	it      iterator.Iterator
	reverse bool
	valid   bool
	key     []byte
	value   []byte
}

func newLevelDBIterator(it iterator.Iterator, reverse bool) (*levelDBIterator, error) {
	i := &levelDBIterator{it: it, reverse: reverse}
	if reverse {
		i.valid = it.Last()
	} else {
		i.valid = it.First()
	}
	if err := i.load(); err != nil {
		it.Release()
		return nil, err
	}
	return i, nil
}

func (i *levelDBIterator) load() error {
	if err := i.it.Error(); err != nil {
		i.valid = false
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !i.valid {
		i.key, i.value = nil, nil
		return nil
	}
	i.key = append([]byte(nil), i.it.Key()...)
	i.value = append([]byte(nil), i.it.Value()...)
	return nil
}

func (i *levelDBIterator) Valid() bool {
	return i.valid
}

func (i *levelDBIterator) Next() error {
	if !i.valid {
		return errors.Wrap(errors.ErrDatabase, "iterator advanced past the end")
	}
	if i.reverse {
		i.valid = i.it.Prev()
	} else {
		i.valid = i.it.Next()
	}
	return i.load()
}

func (i *levelDBIterator) Key() []byte {
	return i.key
}

func (i *levelDBIterator) Value() []byte {
	return i.value
}

func (i *levelDBIterator) Close() {
	i.valid = false
	i.it.Release()
}
