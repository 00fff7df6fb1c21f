package swapchain

import (
	"reflect"

	"github.com/iov-one/swapchain/errors"
)

// Msg is one instruction to the ledger, such as a transfer or an escrow
// take. Signatures travel in the enclosing Tx.
type Msg interface {
	Persistent
	// Path routes the message to its handler, for example "swap/take".
	// It matches [0-9A-Za-z_\-/]+.
	Path() string
	// Validate checks the message on its own, without reading state.
	Validate() error
}

// Marshaller serializes a value. Marshal may reject an invalid value.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a Marshaller that can also be decoded in place, which
// usually needs a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits: one message plus whatever the decorators
// need to authenticate it.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// GetPath returns the route of the message in tx, or "(missing)" when
// it has none.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder turns submitted bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg copies the message of tx into dest, a pointer to the concrete
// message type, and validates it. Handlers call it first.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrState, "nil message")
	}

	out := reflect.ValueOf(dest)
	if out.Kind() != reflect.Ptr || out.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	in := reflect.ValueOf(msg)
	switch {
	case in.Kind() == reflect.Ptr && !in.IsNil() && in.Type().AssignableTo(out.Type()):
		out.Elem().Set(in.Elem())
	case in.Type().AssignableTo(out.Elem().Type()):
		out.Elem().Set(in)
	default:
		return errors.Wrapf(errors.ErrType, "expected %T, got %T", dest, msg)
	}
	return errors.Wrap(msg.Validate(), "invalid message")
}
