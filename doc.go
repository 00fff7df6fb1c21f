/*
Package swapchain defines the interfaces shared by every package of the
application: storage, transactions, messages, handlers and decorators. It also
contains the address and condition types used to identify parties and the
context helpers used to pass the chain id, height and logger around.

The escrow program itself lives in x/swap. The holding account ledger it
settles against lives in x/cash, and app.Ledger executes transactions on top
of both, one at a time and all-or-nothing.
*/
package swapchain
