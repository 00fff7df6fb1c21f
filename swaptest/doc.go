// Package swaptest provides helpers that make testing handlers, decorators
// and extensions easier: mock authenticators, transactions, messages and
// handlers, and random conditions.
package swaptest
