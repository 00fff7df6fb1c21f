package main

import (
	"flag"
	"fmt"
	"io"

	swapchain "github.com/iov-one/swapchain"
	swapd "github.com/iov-one/swapchain/cmd/swapd/app"
	"github.com/iov-one/swapchain/x/swap"
)

func cmdMake(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Open an escrow. The deposit is moved from the maker account to the vault of
the escrow and the address of the escrow is printed.

The seed distinguishes escrows of the same maker. A seed can be reused once
the escrow created with it is taken or refunded.
`)
		fl.PrintDefaults()
	}
	var (
		nf        = registerNodeFlags(fl)
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file of the maker. You can use SWAPD_PRIV_KEY environment variable to set it.")
		assetFl   = fl.String("asset", "", "Asset deposited by the maker.")
		amountFl  = fl.Uint64("amount", 0, "Deposited amount.")
		wantFl    = fl.String("want", "", "Asset requested from the taker.")
		offerFl   = fl.Uint64("offer", 0, "Amount of the requested asset the taker must pay.")
		seedFl    = fl.Uint64("seed", 0, "Escrow seed.")
		accountFl = flAddress(fl, "account", "", "Account funding the deposit. Defaults to the associated account of the maker.")
	)
	fl.Parse(args)

	res, err := nf.submit(*keyPathFl, func(n *swapd.Node, signer swapchain.Address) (swapchain.Msg, error) {
		return &swap.MakeMsg{
			Maker:         signer,
			MakerAsset:    *assetFl,
			TakerAsset:    *wantFl,
			DepositAmount: *amountFl,
			OfferAmount:   *offerFl,
			Seed:          *seedFl,
			MakerAccount:  *accountFl,
		}, nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, swapchain.Address(res.Data))
	return err
}

func cmdTake(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Take an escrow. The taker pays the requested amount to the maker and receives
the whole deposit.

The assets are read from the escrow unless provided. Provide them to make sure
the escrow is the one you expect.
`)
		fl.PrintDefaults()
	}
	var (
		nf        = registerNodeFlags(fl)
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file of the taker. You can use SWAPD_PRIV_KEY environment variable to set it.")
		escrowFl     = flAddress(fl, "escrow", "", "Address of the escrow.")
		makerAssetFl = fl.String("maker-asset", "", "Expected asset of the deposit.")
		takerAssetFl = fl.String("taker-asset", "", "Expected asset to pay.")
		payFl        = flAddress(fl, "pay-account", "", "Account paying the maker. Defaults to the associated account of the taker.")
		receiveFl    = flAddress(fl, "receive-account", "", "Account receiving the deposit. Defaults to the associated account of the taker.")
	)
	fl.Parse(args)

	_, err := nf.submit(*keyPathFl, func(n *swapd.Node, signer swapchain.Address) (swapchain.Msg, error) {
		msg := &swap.TakeMsg{
			Escrow:              *escrowFl,
			Taker:               signer,
			MakerAsset:          *makerAssetFl,
			TakerAsset:          *takerAssetFl,
			TakerPayAccount:     *payFl,
			TakerReceiveAccount: *receiveFl,
		}
		if msg.MakerAsset == "" || msg.TakerAsset == "" {
			e, err := swapd.Escrow(n.Ledger, *escrowFl)
			if err != nil {
				return nil, err
			}
			if msg.MakerAsset == "" {
				msg.MakerAsset = e.MakerAsset
			}
			if msg.TakerAsset == "" {
				msg.TakerAsset = e.TakerAsset
			}
		}
		return msg, nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, "taken")
	return err
}

func cmdRefund(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Cancel an escrow and return the whole deposit to the maker.
`)
		fl.PrintDefaults()
	}
	var (
		nf        = registerNodeFlags(fl)
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file of the maker. You can use SWAPD_PRIV_KEY environment variable to set it.")
		escrowFl  = flAddress(fl, "escrow", "", "Address of the escrow.")
		accountFl = flAddress(fl, "account", "", "Account receiving the deposit. Defaults to the associated account of the maker.")
	)
	fl.Parse(args)

	_, err := nf.submit(*keyPathFl, func(n *swapd.Node, signer swapchain.Address) (swapchain.Msg, error) {
		return &swap.RefundMsg{
			Escrow:       *escrowFl,
			MakerAccount: *accountFl,
		}, nil
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, "refunded")
	return err
}

func cmdEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print an escrow, or all open escrows of a maker, as JSON.
`)
		fl.PrintDefaults()
	}
	var (
		nf       = registerNodeFlags(fl)
		escrowFl = flAddress(fl, "escrow", "", "Address of the escrow.")
		makerFl  = flAddress(fl, "maker", "", "Address of the maker.")
	)
	fl.Parse(args)

	if len(*escrowFl) == 0 && len(*makerFl) == 0 {
		return fmt.Errorf("either -escrow or -maker is required")
	}

	n, _, err := nf.open()
	if err != nil {
		return err
	}
	defer n.Close()

	if len(*escrowFl) != 0 {
		e, err := swapd.Escrow(n.Ledger, *escrowFl)
		if err != nil {
			return nf.redact(err)
		}
		return writeJSON(output, e)
	}
	entries, err := swapd.EscrowsByMaker(n.Ledger, *makerFl)
	if err != nil {
		return nf.redact(err)
	}
	return writeJSON(output, entries)
}
