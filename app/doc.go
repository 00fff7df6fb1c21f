/*
Package app hosts the extensions. It contains the Router dispatching
messages to handlers by path, the decorator chain, the query router, genesis
loading and the Ledger, which executes transactions one at a time and
applies the changes of every successful one atomically.
*/
package app
