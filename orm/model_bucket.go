package orm

import (
	"fmt"
	"reflect"
	"regexp"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type under a prefixed subspace of
// the database.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db swapchain.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db swapchain.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database under given key, updating
	// all indexes.
	Put(db swapchain.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db swapchain.KVStore, key []byte) error

	// Remove loads the entity with given primary key into dest and
	// deletes it in a single operation. Only one of two callers removing
	// the same entity can succeed, the other one gets ErrNotFound.
	Remove(db swapchain.KVStore, key []byte, dest Model) error

	// ByIndex returns all entities referenced by the named index under
	// given key. Destination must be a pointer to a slice of models or
	// model pointers.
	ByIndex(db swapchain.ReadOnlyKVStore, indexName string, key []byte, dest interface{}) error

	// Index returns the index with given name.
	Index(name string) (Index, error)

	// Register registers this bucket and all its indexes for queries
	// under given name.
	Register(name string, r swapchain.QueryRouter)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return WithMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// WithMultiKeyIndex works like WithIndex, but a single entity can be
// indexed under many values.
func WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic(fmt.Sprintf("index %q registered twice", name))
		}
		mb.indexes[name] = NewNativeIndex(mb.name+"_"+name, indexer, unique, mb.dbKey)
	}
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as given one.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model %T must be a pointer", m))
	}
	mb := &modelBucket{
		name:    name,
		prefix:  append([]byte(name), ':'),
		model:   tp.Elem(),
		indexes: make(map[string]Index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]Index
}

var _ ModelBucket = (*modelBucket)(nil)

// dbKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) One(db swapchain.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.name)
	}
	return mb.load(raw, dest)
}

func (mb *modelBucket) load(raw []byte, dest Model) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() || dv.Type().Elem() != mb.model {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	dv.Elem().Set(reflect.Zero(mb.model))
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) Has(db swapchain.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot check the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.name)
	}
	return nil
}

func (mb *modelBucket) Put(db swapchain.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "missing key")
	}
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	if raw == nil {
		// A nil value cannot be told apart from a missing one.
		raw = []byte{}
	}

	if len(mb.indexes) > 0 {
		prev, err := mb.previous(db, key)
		if err != nil {
			return err
		}
		for _, idx := range mb.indexes {
			if err := idx.Update(db, key, prev, m); err != nil {
				return errors.Wrapf(err, "cannot update %s index", idx.Name())
			}
		}
	}

	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// previous returns the currently stored model or nil.
func (mb *modelBucket) previous(db swapchain.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(mb.dbKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	prev := reflect.New(mb.model).Interface().(Model)
	if err := mb.load(raw, prev); err != nil {
		return nil, err
	}
	return prev, nil
}

func (mb *modelBucket) Delete(db swapchain.KVStore, key []byte) error {
	prev, err := mb.previous(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.name)
	}
	return mb.destroy(db, key, prev)
}

func (mb *modelBucket) Remove(db swapchain.KVStore, key []byte, dest Model) error {
	if err := mb.One(db, key, dest); err != nil {
		return err
	}
	return mb.destroy(db, key, dest)
}

func (mb *modelBucket) destroy(db swapchain.KVStore, key []byte, prev Model) error {
	for _, idx := range mb.indexes {
		if err := idx.Update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "cannot update %s index", idx.Name())
		}
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) ByIndex(db swapchain.ReadOnlyKVStore, indexName string, key []byte, dest interface{}) error {
	idx, err := mb.Index(indexName)
	if err != nil {
		return err
	}

	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() || dv.Elem().Kind() != reflect.Slice {
		return errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", dest)
	}
	slice := dv.Elem()
	elem := slice.Type().Elem()
	byPtr := elem.Kind() == reflect.Ptr
	if (byPtr && elem.Elem() != mb.model) || (!byPtr && elem != mb.model) {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %s", mb.model, elem)
	}

	keys, err := idx.Keys(db, key)
	if err != nil {
		return errors.Wrap(err, "cannot query index")
	}
	for _, k := range keys {
		m := reflect.New(mb.model)
		if err := mb.One(db, k, m.Interface().(Model)); err != nil {
			return errors.Wrapf(err, "cannot load %q", k)
		}
		if byPtr {
			slice = reflect.Append(slice, m)
		} else {
			slice = reflect.Append(slice, m.Elem())
		}
	}
	dv.Elem().Set(slice)
	return nil
}

func (mb *modelBucket) Index(name string) (Index, error) {
	idx, ok := mb.indexes[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown index %q", name)
	}
	return idx, nil
}

// Register registers this bucket and all indexes.
// You can define a name here for queries, which is
// different than the bucket name used to prefix the data
func (mb *modelBucket) Register(name string, r swapchain.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	root := "/" + name
	r.Register(root, mb)
	for n, idx := range mb.indexes {
		r.Register(root+"/"+n, idx)
	}
}

// Query handles queries from the QueryRouter
func (mb *modelBucket) Query(db swapchain.ReadOnlyKVStore, mod string, data []byte) ([]swapchain.Model, error) {
	switch mod {
	case swapchain.KeyQueryMod:
		value, err := db.Get(mb.dbKey(data))
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []swapchain.Model{{Key: data, Value: value}}, nil
	case swapchain.PrefixQueryMod:
		return queryPrefix(db, mb.prefix, mb.dbKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "not implemented: %q", mod)
	}
}
