/*
Package crypto wraps the ed25519 keys used by users of the ledger.

A public key is represented on the ledger by the condition
sigs/ed25519/<public key bytes>, whose address identifies the user.
*/
package crypto
