/*
Package cash implements holding accounts.

A holding account has a single owner and holds a balance of a single asset.
Funds can only leave an account when its owner is authenticated, which for
a user is a signature and for a program is a derivation proof. Every
(owner, asset) pair has one associated account at a deterministic address,
see AssociatedAddress.
*/
package cash
