/*
Package x contains some standard extensions

Extensions implement common functionality (Handler, Decorator, etc.)
that can be composed into an application. This package holds the
interfaces shared between extensions, the subpackages hold the
implementations.
*/
package x
