package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	Insert(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	FindConnectedAccount(ctx context.Context, companyID snowflake.ID) (*ConnectedAccount, error)
}
