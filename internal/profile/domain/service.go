package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// GetOrProvision returns the caller's profile, creating it with a fresh
	// company id on first read.
	GetOrProvision(ctx context.Context, userID, email string) (*Profile, error)

	// ConnectedAccount looks up the tenant's connected payment account, if any.
	ConnectedAccount(ctx context.Context, companyID snowflake.ID) (*ConnectedAccount, error)

	// SetConnectedAccount stores a newly created account id on the profile.
	SetConnectedAccount(ctx context.Context, userID, accountID string) error

	// MarkConnected reconciles the cached charges-enabled flag.
	MarkConnected(ctx context.Context, userID string, connected bool) error
}

var (
	ErrInvalidUser     = errors.New("invalid_user")
	ErrProfileNotFound = errors.New("profile_not_found")
)
