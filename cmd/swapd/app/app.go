/*
Package swapd links together all the various components
to construct the swapd ledger.
*/
package swapd

import (
	"path/filepath"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/app"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/store"
	"github.com/iov-one/swapchain/x"
	"github.com/iov-one/swapchain/x/cash"
	"github.com/iov-one/swapchain/x/sigs"
	"github.com/iov-one/swapchain/x/swap"
	"github.com/iov-one/swapchain/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the authentication of users, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// BankAuthenticator returns the authentication used by the cash controller.
// Besides signatures it accepts the program authority, so that handlers of
// the swap extension can move the funds held by vaults.
func BankAuthenticator(program swap.Program) x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, swap.NewAuthenticate(program))
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the cash and swap handlers.
func Router(program swap.Program) *app.Router {
	authFn := Authenticator()
	bank := cash.NewController(BankAuthenticator(program))

	r := app.NewRouter()
	cash.RegisterRoutes(r, authFn, bank)
	swap.RegisterRoutes(r, authFn, program, bank)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/accounts", "/escrows" and "/auth"
func QueryRouter() app.QueryRouter {
	r := app.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		swap.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain.
func Stack(program swap.Program) swapchain.Handler {
	return Chain().WithHandler(Router(program))
}

// Initializers returns the initializers of all extensions that read the
// genesis.
func Initializers() swapchain.Initializer {
	return app.ChainInitializers(cash.Initializer{})
}

// Ledger combines the stack with a store.
func Ledger(db swapchain.CacheableKVStore, program swap.Program, logger log.Logger) (*app.Ledger, error) {
	l, err := app.NewLedger(db, Stack(program), QueryRouter())
	if err != nil {
		return nil, err
	}
	return l.WithLogger(logger).WithDecoder(TxDecoder), nil
}

// Node is a ledger persisted in the home directory.
type Node struct {
	*app.Ledger
	Genesis *app.Genesis
	Program swap.Program

	db *store.LevelDBStore
}

// GenesisPath returns the location of the genesis file in the home
// directory.
func GenesisPath(home string) string {
	return filepath.Join(home, "genesis.json")
}

// DataPath returns the location of the database in the home directory.
func DataPath(home string) string {
	return filepath.Join(home, "data")
}

// OpenNode loads the genesis from the home directory and opens the ledger
// database. The chain is initialized from the genesis on the first start.
func OpenNode(home string, logger log.Logger) (*Node, error) {
	gen, err := app.LoadGenesis(GenesisPath(home))
	if err != nil {
		return nil, err
	}
	program, err := swap.ProgramFromGenesis(gen.AppState)
	if err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	db, err := store.OpenLevelDB(DataPath(home))
	if err != nil {
		return nil, err
	}
	l, err := Ledger(db, program, logger.With("module", "ledger"))
	if err != nil {
		db.Close()
		return nil, err
	}
	switch id := l.ChainID(); id {
	case "":
		if err := l.InitChain(gen, Initializers()); err != nil {
			db.Close()
			return nil, err
		}
	case gen.ChainID:
	default:
		db.Close()
		return nil, errors.Wrapf(errors.ErrState, "database belongs to chain %s", id)
	}
	return &Node{Ledger: l, Genesis: gen, Program: program, db: db}, nil
}

// Close releases the database.
func (n *Node) Close() error {
	return n.db.Close()
}
