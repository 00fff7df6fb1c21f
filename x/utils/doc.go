// Package utils contains decorators shared by every application stack:
// logging, panic recovery and savepoints.
package utils
