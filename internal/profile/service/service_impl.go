package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  profiledomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  profiledomain.Repository
}

func NewService(p Params) profiledomain.Service {
	return &Service{
		log:   p.Log.Named("profile.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) GetOrProvision(ctx context.Context, userID, email string) (*profiledomain.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, profiledomain.ErrInvalidUser
	}

	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.CompanyID == nil {
			companyID := s.genID.Generate()
			existing.CompanyID = &companyID
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	companyID := s.genID.Generate()
	profile := &profiledomain.Profile{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Email:     strings.TrimSpace(email),
		CompanyID: &companyID,
		Role:      profiledomain.RoleInvoiceOwner,
	}
	if err := s.repo.Insert(ctx, profile); err != nil {
		return nil, err
	}
	s.log.Info("provisioned profile",
		zap.String("user_id", userID),
		zap.String("company_id", companyID.String()),
	)
	return profile, nil
}

func (s *Service) ConnectedAccount(ctx context.Context, companyID snowflake.ID) (*profiledomain.ConnectedAccount, error) {
	if companyID == 0 {
		return nil, profiledomain.ErrInvalidUser
	}
	return s.repo.FindConnectedAccount(ctx, companyID)
}

func (s *Service) SetConnectedAccount(ctx context.Context, userID, accountID string) error {
	profile, err := s.mustFind(ctx, userID)
	if err != nil {
		return err
	}
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return profiledomain.ErrInvalidUser
	}
	profile.StripeAccountID = &accountID
	profile.StripeConnected = false
	return s.repo.Update(ctx, profile)
}

func (s *Service) MarkConnected(ctx context.Context, userID string, connected bool) error {
	profile, err := s.mustFind(ctx, userID)
	if err != nil {
		return err
	}
	if profile.StripeConnected == connected {
		return nil
	}
	profile.StripeConnected = connected
	return s.repo.Update(ctx, profile)
}

func (s *Service) mustFind(ctx context.Context, userID string) (*profiledomain.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, profiledomain.ErrInvalidUser
	}
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, profiledomain.ErrProfileNotFound
	}
	return profile, nil
}
