package main

import (
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/app"
	swapd "github.com/iov-one/swapchain/cmd/swapd/app"
	"github.com/iov-one/swapchain/pda"
	"github.com/iov-one/swapchain/x/swap"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create the genesis file in the home directory and initialize the ledger.

Use -alloc to credit holding accounts at genesis. The flag can be repeated.
This command fails if the genesis file already exists.
`)
		fl.PrintDefaults()
	}
	var allocs allocations
	fl.Var(&allocs, "alloc", "Genesis allocation in <hex owner>:<asset>:<amount> format.")
	var (
		nf          = registerNodeFlags(fl)
		chainIDFl   = fl.String("chain-id", "local-swapchain", "Chain ID.")
		programIDFl = fl.String("program-id", "", "Hex encoded program ID. A random one is generated if not set.")
	)
	fl.Parse(args)

	var programID pda.ProgramID
	if *programIDFl == "" {
		if _, err := rand.Read(programID[:]); err != nil {
			return fmt.Errorf("cannot generate program id: %s", err)
		}
	} else {
		var err error
		if programID, err = pda.ParseProgramID(*programIDFl); err != nil {
			return err
		}
	}

	gen, err := genesis(*chainIDFl, programID, allocs)
	if err != nil {
		return err
	}
	if err := gen.Validate(); err != nil {
		return err
	}

	path := swapd.GenesisPath(*nf.home)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return fmt.Errorf("genesis file %q already exists", path)
	}
	if err := os.MkdirAll(*nf.home, 0700); err != nil {
		return fmt.Errorf("cannot create home directory: %s", err)
	}
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize genesis: %s", err)
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("cannot write genesis: %s", err)
	}

	n, _, err := nf.open()
	if err != nil {
		return err
	}
	defer n.Close()

	_, err = fmt.Fprintf(output, "chain %s initialized with program %s\n", n.ChainID(), n.Program.ID())
	return err
}

func genesis(chainID string, programID pda.ProgramID, allocs allocations) (*app.Genesis, error) {
	rawSwap, err := json.Marshal(swap.Config{ProgramID: programID})
	if err != nil {
		return nil, err
	}
	if allocs == nil {
		allocs = allocations{}
	}
	rawCash, err := json.Marshal(allocs)
	if err != nil {
		return nil, err
	}
	return &app.Genesis{
		ChainID: chainID,
		AppState: swapchain.Options{
			"swap": rawSwap,
			"cash": rawCash,
		},
	}, nil
}
