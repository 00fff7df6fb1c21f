package cash

import (
	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use swapchain.Address, so address in hex, not base64
type GenesisAccount struct {
	Owner   swapchain.Address `json:"owner"`
	Asset   string            `json:"asset"`
	Balance uint64            `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ swapchain.Initializer = Initializer{}

// FromGenesis opens the associated account of every listed owner and
// credits it with the listed balance.
func (Initializer) FromGenesis(opts swapchain.Options, kv swapchain.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	// Issuing does not require authentication.
	control := NewController(nil)
	for i, acct := range accts {
		addr := AssociatedAddress(acct.Owner, acct.Asset)
		if _, err := control.CreateAccount(kv, addr, acct.Owner, acct.Asset); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if acct.Balance == 0 {
			continue
		}
		if err := control.Issue(kv, addr, acct.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
