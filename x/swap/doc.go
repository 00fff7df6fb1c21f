/*
Package swap implements a two party exchange of assets held in escrow.

A maker deposits an amount of one asset into a vault and names the amount
of another asset it wants in return. A taker completes the exchange by
paying the asked amount and receiving the vault content, or the maker
cancels and gets the deposit back. Both paths remove the escrow.

The vault is a holding account owned by the program authority, a key-less
identity derived from the program id. No signature can move vault funds.
Handlers of this package put a derivation proof into the context when they
withdraw from a vault, and Authenticate accepts the authority only if that
proof derives its address for the configured program.

Escrow, vault and authority addresses are all derived, so the escrow of a
(maker, seed) pair can be found without any index:

	authority: ["auth", bump]
	escrow:    ["escrow", maker, le64(seed), bump]
	vault:     ["vault", escrow key, bump]
*/
package swap
