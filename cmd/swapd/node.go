package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	swapchain "github.com/iov-one/swapchain"
	swapd "github.com/iov-one/swapchain/cmd/swapd/app"
	"github.com/iov-one/swapchain/crypto"
	"github.com/iov-one/swapchain/errors"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

// nodeFlags are shared by all commands that open the ledger.
type nodeFlags struct {
	home     *string
	logLevel *string
	debug    *bool
}

func registerNodeFlags(fl *flag.FlagSet) nodeFlags {
	return nodeFlags{
		home: fl.String("home", defaultHome(),
			"Directory holding the genesis file and the database. You can use SWAPD_HOME environment variable to set it."),
		logLevel: fl.String("log-level", "error",
			"Log filter, for example 'info' or 'debug'."),
		debug: fl.Bool("debug", false,
			"Print internal error details."),
	}
}

// logger writes to stderr, so that the output can be processed.
func (nf nodeFlags) logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	opt, err := log.AllowLevel(*nf.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}

// open returns the node stored in the home directory.
func (nf nodeFlags) open() (*swapd.Node, log.Logger, error) {
	logger, err := nf.logger()
	if err != nil {
		return nil, nil, err
	}
	n, err := swapd.OpenNode(*nf.home, logger)
	if err != nil {
		return nil, nil, nf.redact(err)
	}
	return n, logger, nil
}

func (nf nodeFlags) redact(err error) error {
	return errors.Redact(err, *nf.debug)
}

// submit signs a message with the key stored at keyPath and executes it.
// The message is built by the given function, which can query the ledger.
func (nf nodeFlags) submit(keyPath string, build func(n *swapd.Node, signer swapchain.Address) (swapchain.Msg, error)) (*swapchain.DeliverResult, error) {
	key, err := loadKey(keyPath)
	if err != nil {
		return nil, err
	}
	n, logger, err := nf.open()
	if err != nil {
		return nil, err
	}
	defer n.Close()

	msg, err := build(n, key.PublicKey().Address())
	if err != nil {
		return nil, nf.redact(err)
	}
	ctx := swapchain.WithLogger(context.Background(), logger)
	res, err := swapd.SignAndSubmit(ctx, n.Ledger, key, msg)
	if err != nil {
		return nil, nf.redact(err)
	}
	return res, nil
}

// loadKey reads the raw ed25519 private key written by keygen.
func loadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return &crypto.PrivateKey{Ed25519: raw}, nil
}

// keyAddress returns the address of the key stored at path.
func keyAddress(path string) (swapchain.Address, error) {
	key, err := loadKey(path)
	if err != nil {
		return nil, err
	}
	return key.PublicKey().Address(), nil
}

func writeJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}
