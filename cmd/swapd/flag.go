package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/coin"
	"github.com/iov-one/swapchain/x/cash"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *swapchain.Address {
	var a flagAddress
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return (*swapchain.Address)(&a)
}

type flagAddress swapchain.Address

func (a flagAddress) String() string {
	if len(a) == 0 {
		return ""
	}
	return swapchain.Address(a).String()
}

func (a *flagAddress) Set(raw string) error {
	addr, err := swapchain.ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = flagAddress(addr)
	return nil
}

// allocations collects repeated genesis allocation flags in the format
// <owner address>:<asset>:<amount>.
type allocations []cash.GenesisAccount

func (a *allocations) String() string {
	chunks := make([]string, 0, len(*a))
	for _, acc := range *a {
		chunks = append(chunks, fmt.Sprintf("%s:%s:%d", acc.Owner, acc.Asset, acc.Balance))
	}
	return strings.Join(chunks, ",")
}

func (a *allocations) Set(raw string) error {
	chunks := strings.Split(raw, ":")
	if len(chunks) != 3 {
		return fmt.Errorf("allocation must be <owner>:<asset>:<amount>, got %q", raw)
	}
	owner, err := swapchain.ParseAddress(chunks[0])
	if err != nil {
		return fmt.Errorf("owner: %s", err)
	}
	if err := owner.Validate(); err != nil {
		return fmt.Errorf("owner: %s", err)
	}
	if err := coin.ValidateTicker(chunks[1]); err != nil {
		return err
	}
	amount, err := strconv.ParseUint(chunks[2], 10, 64)
	if err != nil {
		return fmt.Errorf("amount: %s", err)
	}
	*a = append(*a, cash.GenesisAccount{Owner: owner, Asset: chunks[1], Balance: amount})
	return nil
}
