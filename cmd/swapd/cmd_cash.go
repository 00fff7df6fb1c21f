package main

import (
	"flag"
	"fmt"
	"io"

	swapchain "github.com/iov-one/swapchain"
	swapd "github.com/iov-one/swapchain/cmd/swapd/app"
	"github.com/iov-one/swapchain/x/cash"
)

func cmdSend(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Transfer funds from your associated account to the associated account of the
recipient. The recipient account must exist.
`)
		fl.PrintDefaults()
	}
	var (
		nf        = registerNodeFlags(fl)
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file of the sender. You can use SWAPD_PRIV_KEY environment variable to set it.")
		toFl     = flAddress(fl, "to", "", "Owner address of the recipient.")
		assetFl  = fl.String("asset", "", "Transferred asset.")
		amountFl = fl.Uint64("amount", 0, "Transferred amount.")
		memoFl   = fl.String("memo", "", "Optional note.")
	)
	fl.Parse(args)

	if len(*toFl) == 0 {
		return fmt.Errorf("-to is required")
	}
	_, err := nf.submit(*keyPathFl, func(n *swapd.Node, signer swapchain.Address) (swapchain.Msg, error) {
		return &cash.SendMsg{
			Source:      cash.AssociatedAddress(signer, *assetFl),
			Destination: cash.AssociatedAddress(*toFl, *assetFl),
			Amount:      *amountFl,
			Memo:        *memoFl,
		}, nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, "sent")
	return err
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of the associated account of an owner for given asset. When
no asset is given, all accounts of the owner are printed as JSON.
`)
		fl.PrintDefaults()
	}
	var (
		nf        = registerNodeFlags(fl)
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file of the owner, used when -owner is not set.")
		ownerFl = flAddress(fl, "owner", "", "Owner address.")
		assetFl = fl.String("asset", "", "Asset.")
	)
	fl.Parse(args)

	owner := *ownerFl
	if len(owner) == 0 {
		addr, err := keyAddress(*keyPathFl)
		if err != nil {
			return err
		}
		owner = addr
	}

	n, _, err := nf.open()
	if err != nil {
		return err
	}
	defer n.Close()

	if *assetFl == "" {
		accounts, err := swapd.Accounts(n.Ledger, owner)
		if err != nil {
			return nf.redact(err)
		}
		return writeJSON(output, accounts)
	}
	balance, err := swapd.Balance(n.Ledger, owner, *assetFl)
	if err != nil {
		return nf.redact(err)
	}
	_, err = fmt.Fprintf(output, "%d %s\n", balance, *assetFl)
	return err
}
