// Package processor defines the narrow boundary the payment core needs from
// the hosted payment processor. Implementations translate SDK errors into the
// sentinel errors below so callers can branch without unwrapping SDK types.
package processor

import (
	"context"
	"errors"
)

var (
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrMalformedEvent   = errors.New("malformed_event")
	ErrSessionFailed    = errors.New("checkout_session_failed")
	ErrAccountFailed    = errors.New("account_lookup_failed")
)

// EventTypeCheckoutCompleted is the only event type the reconciler acts on.
const EventTypeCheckoutCompleted = "checkout.session.completed"

// CheckoutSpec describes a checkout session to create. Zero values for the
// connect fields mean the charge runs on the platform account.
type CheckoutSpec struct {
	LineItemName string
	Currency     string
	AmountCents  int64
	SuccessURL   string
	CancelURL    string
	Metadata     map[string]string

	// Connect routing. When ConnectedAccountID is set the session is created
	// in the connected account's context with the platform's application fee
	// attached.
	ConnectedAccountID  string
	ApplicationFeeCents int64
}

// IsConnect reports whether the spec routes through a connected account.
func (s CheckoutSpec) IsConnect() bool { return s.ConnectedAccountID != "" }

// WithoutConnect strips the payment-split instructions for the
// platform-only fallback attempt.
func (s CheckoutSpec) WithoutConnect() CheckoutSpec {
	s.ConnectedAccountID = ""
	s.ApplicationFeeCents = 0
	return s
}

// CheckoutSession is the processor's handle for a hosted payment page.
type CheckoutSession struct {
	ID  string
	URL string
}

// Account is the processor's view of a connected account.
type Account struct {
	ID               string
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
}

// Event is a verified webhook event. Metadata carries the job and tenant
// identifiers stamped at session creation.
type Event struct {
	ID          string
	Type        string
	SessionID   string
	AmountCents int64
	Metadata    map[string]string
}

// Client covers the synchronous processor calls the core makes.
type Client interface {
	CreateCheckoutSession(ctx context.Context, spec CheckoutSpec) (*CheckoutSession, error)
	GetAccount(ctx context.Context, accountID string) (*Account, error)
	CreateAccount(ctx context.Context, email string) (*Account, error)
	CreateAccountLink(ctx context.Context, accountID, returnURL, refreshURL string) (string, error)
}

// EventVerifier authenticates an inbound webhook payload before any of its
// contents are trusted.
type EventVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (*Event, error)
}
