package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	swapchain "github.com/iov-one/swapchain"
)

// commands maps the first argument to its implementation. A command gets
// stdin, stdout and the remaining arguments, parses its own flags and
// writes logs to stderr.
//
// Every command that touches the ledger opens the database found in the home
// directory, executes a single operation and closes it again:
//
//	$ swapd init -chain-id local-swap -alloc 'E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0:AAA:1000'
//	$ swapd make -asset AAA -amount 1000 -want BBB -offer 50 -seed 7
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"balance": cmdBalance,
	"escrow":  cmdEscrow,
	"init":    cmdInit,
	"keyaddr": cmdKeyaddr,
	"keygen":  cmdKeygen,
	"make":    cmdMake,
	"refund":  cmdRefund,
	"send":    cmdSend,
	"take":    cmdTake,
	"version": cmdVersion,
}

func main() {
	if len(os.Args) < 2 {
		usage(fmt.Sprintf("%s is a ledger hosting two-party asset exchanges.", os.Args[0]))
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		usage(fmt.Sprintf("Unknown command %q", os.Args[1]))
	}
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// usage prints headline and the command list to stderr and exits.
func usage(headline string) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(os.Stderr, "%s\n\nUsage: %s <command> [<flags>]\n\nCommands:\n\t%s\n\n",
		headline, os.Args[0], strings.Join(names, "\n\t"))
	fmt.Fprintf(os.Stderr, "Run '%s <command> -help' for the flags of a command.\n", os.Args[0])
	os.Exit(2)
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, swapchain.Version())
	return err
}
