package cash

import (
	"encoding/json"
	"testing"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/store"
	"github.com/iov-one/swapchain/swaptest/assert"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"cash": [
			{"owner": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "asset": "AAA", "balance": 1000},
			{"owner": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "asset": "BBB"},
			{"owner": "5AC2F5BD79D4D60F1E4E2B3FA7E7F8F7BB3A6F5C", "asset": "BBB", "balance": 50}
		]
	}`
	var opts swapchain.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	first, err := swapchain.ParseAddress("E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")
	assert.Nil(t, err)
	second, err := swapchain.ParseAddress("5AC2F5BD79D4D60F1E4E2B3FA7E7F8F7BB3A6F5C")
	assert.Nil(t, err)

	c := NewController(nil)
	cases := map[string]struct {
		addr swapchain.Address
		want uint64
	}{
		"first AAA":  {addr: AssociatedAddress(first, "AAA"), want: 1000},
		"first BBB":  {addr: AssociatedAddress(first, "BBB"), want: 0},
		"second BBB": {addr: AssociatedAddress(second, "BBB"), want: 50},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := c.Balance(db, tc.addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGenesisErrors(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"invalid json": {
			genesis: `{"cash": {"owner": 1}}`,
			wantErr: errors.ErrInput,
		},
		"invalid asset": {
			genesis: `{"cash": [{"owner": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "asset": "a"}]}`,
			wantErr: errors.ErrCurrency,
		},
		"duplicated account": {
			genesis: `{"cash": [
				{"owner": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "asset": "AAA"},
				{"owner": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "asset": "AAA"}
			]}`,
			wantErr: errors.ErrDuplicate,
		},
		"no cash section": {
			genesis: `{}`,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts swapchain.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))
			err := Initializer{}.FromGenesis(opts, store.MemStore())
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
