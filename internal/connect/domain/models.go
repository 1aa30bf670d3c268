package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// ConnectionResponse is the result of starting or resuming onboarding.
type ConnectionResponse struct {
	AlreadyConnected bool   `json:"already_connected"`
	AccountID        string `json:"account_id,omitempty"`
	OnboardingURL    string `json:"onboarding_url,omitempty"`
}

// ConnectionStatus is the live view of a tenant's payment account.
type ConnectionStatus struct {
	Connected      bool   `json:"connected"`
	AccountID      string `json:"account_id,omitempty"`
	ChargesEnabled bool   `json:"charges_enabled"`
	PayoutsEnabled bool   `json:"payouts_enabled"`
}

// Service manages the tenant's connected payment account lifecycle.
type Service interface {
	// InitiateConnection creates the account on first call and returns a
	// fresh onboarding link. Fully onboarded tenants short-circuit.
	InitiateConnection(ctx context.Context, companyID snowflake.ID, userID, email string) (*ConnectionResponse, error)

	// CheckStatus queries the processor and reconciles the cached flag.
	CheckStatus(ctx context.Context, companyID snowflake.ID, userID string) (*ConnectionStatus, error)
}

var ErrConnectionFailed = errors.New("connection_failed")
