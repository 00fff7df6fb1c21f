package app

import (
	"encoding/json"
	"io/ioutil"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
)

// Genesis file format. The app state is parsed by each extension.
type Genesis struct {
	ChainID  string            `json:"chain_id"`
	AppState swapchain.Options `json:"app_state"`
}

// Validate returns an error if the genesis cannot initialize a ledger.
func (g *Genesis) Validate() error {
	if !swapchain.IsValidChainID(g.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", g.ChainID)
	}
	if len(g.AppState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}
	return nil
}

// LoadGenesis reads and validates the genesis file at given path.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshal genesis file: %s", err)
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...swapchain.Initializer) swapchain.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []swapchain.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts swapchain.Options, kv swapchain.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

// _sc: is a prefix for internal ledger data
const chainIDKey = "_sc:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv swapchain.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv swapchain.KVStore, chainID string) error {
	if !swapchain.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
