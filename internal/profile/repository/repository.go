package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
)

type Repository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) profiledomain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUserID(ctx context.Context, userID string) (*profiledomain.Profile, error) {
	var profile profiledomain.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) Insert(ctx context.Context, profile *profiledomain.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *Repository) Update(ctx context.Context, profile *profiledomain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(profile).Error
}

// FindConnectedAccount returns the owning profile's payment account for a
// tenant. Owner profiles win over teammates when both carry an account id.
func (r *Repository) FindConnectedAccount(ctx context.Context, companyID snowflake.ID) (*profiledomain.ConnectedAccount, error) {
	var profile profiledomain.Profile
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND stripe_account_id IS NOT NULL", companyID).
		Order("CASE role WHEN 'invoice_owner' THEN 0 ELSE 1 END").
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if profile.StripeAccountID == nil || *profile.StripeAccountID == "" {
		return nil, nil
	}
	return &profiledomain.ConnectedAccount{
		AccountID: *profile.StripeAccountID,
		Marked:    profile.StripeConnected,
	}, nil
}
