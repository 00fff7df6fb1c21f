package cash

import (
	"context"

	swapchain "github.com/iov-one/swapchain"
	"github.com/iov-one/swapchain/errors"
	"github.com/iov-one/swapchain/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r swapchain.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
	r.Handle(CreateAccountMsg{}.Path(), NewCreateAccountHandler(auth, control))
}

// RegisterQuery will register this bucket as "/accounts"
func RegisterQuery(qr swapchain.QueryRouter) {
	NewBucket().Register("accounts", qr)
}

// SendHandler will handle sending funds
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ swapchain.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the message is properly formed and signed by the owner of
// the source account. Funds are checked only on delivery.
func (h SendHandler) Check(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapchain.CheckResult{}, nil
}

// Deliver moves the funds from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(ctx, db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	swapchain.GetLogger(ctx).Debug("funds sent",
		"source", msg.Source, "destination", msg.Destination, "amount", msg.Amount)
	return &swapchain.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := swapchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	src, err := h.control.Account(db, msg.Source)
	if err != nil {
		return nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, src.Owner, "account owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateAccountHandler opens associated accounts.
type CreateAccountHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ swapchain.Handler = CreateAccountHandler{}

// NewCreateAccountHandler creates a handler for CreateAccountMsg
func NewCreateAccountHandler(auth x.Authenticator, control Controller) CreateAccountHandler {
	return CreateAccountHandler{
		auth:    auth,
		control: control,
	}
}

func (h CreateAccountHandler) Check(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &swapchain.CheckResult{}, nil
}

// Deliver returns the address of the created account as result data.
func (h CreateAccountHandler) Deliver(ctx context.Context, db swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr := AssociatedAddress(msg.Owner, msg.Asset)
	if _, err := h.control.CreateAccount(db, addr, msg.Owner, msg.Asset); err != nil {
		return nil, err
	}
	return &swapchain.DeliverResult{Data: addr}, nil
}

func (h CreateAccountHandler) validate(ctx context.Context, tx swapchain.Tx) (*CreateAccountMsg, error) {
	var msg CreateAccountMsg
	if err := swapchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Owner, "owner"); err != nil {
		return nil, err
	}
	return &msg, nil
}
