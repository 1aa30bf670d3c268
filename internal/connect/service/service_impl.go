package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	auditdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/audit/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/config"
	connectdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/connect/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
)

type Params struct {
	fx.In

	Cfg       config.Config
	Log       *zap.Logger
	Profiles  profiledomain.Service
	Processor processor.Client
	AuditSvc  auditdomain.Service
}

type Service struct {
	cfg       config.Config
	log       *zap.Logger
	profiles  profiledomain.Service
	processor processor.Client
	auditSvc  auditdomain.Service
}

func NewService(p Params) connectdomain.Service {
	return &Service{
		cfg:       p.Cfg,
		log:       p.Log.Named("connect.service"),
		profiles:  p.Profiles,
		processor: p.Processor,
		auditSvc:  p.AuditSvc,
	}
}

func (s *Service) InitiateConnection(ctx context.Context, companyID snowflake.ID, userID, email string) (*connectdomain.ConnectionResponse, error) {
	if companyID == 0 || userID == "" {
		return nil, profiledomain.ErrInvalidUser
	}

	existing, err := s.profiles.ConnectedAccount(ctx, companyID)
	if err != nil {
		return nil, err
	}

	accountID := ""
	if existing != nil && existing.AccountID != "" {
		accountID = existing.AccountID

		// Re-entry while onboarding is pending gets a fresh link instead of
		// a second account.
		live, err := s.processor.GetAccount(ctx, accountID)
		if err == nil && live.ChargesEnabled {
			if !existing.Marked {
				if err := s.profiles.MarkConnected(ctx, userID, true); err != nil {
					s.log.Warn("connected flag reconcile failed", zap.Error(err))
				}
			}
			return &connectdomain.ConnectionResponse{
				AlreadyConnected: true,
				AccountID:        accountID,
			}, nil
		}
		if err != nil {
			s.log.Warn("live account check failed, reissuing onboarding link",
				zap.String("account_id", accountID),
				zap.Error(err))
		}
	}

	if accountID == "" {
		account, err := s.processor.CreateAccount(ctx, email)
		if err != nil {
			s.log.Error("account creation failed", zap.Error(err))
			return nil, connectdomain.ErrConnectionFailed
		}
		accountID = account.ID
		if err := s.profiles.SetConnectedAccount(ctx, userID, accountID); err != nil {
			// The account exists at the processor but not locally. Surface
			// the failure; a retry reconciles through ConnectedAccount.
			s.log.Error("connected account persistence failed",
				zap.String("account_id", accountID),
				zap.Error(err))
			return nil, err
		}
	}

	returnURL := fmt.Sprintf("%s/settings/payments?connected=1", s.cfg.AppBaseURL)
	refreshURL := fmt.Sprintf("%s/settings/payments?refresh=1", s.cfg.AppBaseURL)
	url, err := s.processor.CreateAccountLink(ctx, accountID, returnURL, refreshURL)
	if err != nil {
		s.log.Error("onboarding link creation failed",
			zap.String("account_id", accountID),
			zap.Error(err))
		return nil, connectdomain.ErrConnectionFailed
	}

	s.writeAuditLog(ctx, companyID, userID, accountID)

	return &connectdomain.ConnectionResponse{
		AccountID:     accountID,
		OnboardingURL: url,
	}, nil
}

func (s *Service) CheckStatus(ctx context.Context, companyID snowflake.ID, userID string) (*connectdomain.ConnectionStatus, error) {
	if companyID == 0 {
		return nil, profiledomain.ErrInvalidUser
	}

	existing, err := s.profiles.ConnectedAccount(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.AccountID == "" {
		return &connectdomain.ConnectionStatus{Connected: false}, nil
	}

	live, err := s.processor.GetAccount(ctx, existing.AccountID)
	if err != nil {
		s.log.Warn("live status check failed",
			zap.String("account_id", existing.AccountID),
			zap.Error(err))
		// Fall back to the cached flag rather than flapping to disconnected.
		return &connectdomain.ConnectionStatus{
			Connected: existing.Marked,
			AccountID: existing.AccountID,
		}, nil
	}

	if live.ChargesEnabled != existing.Marked && userID != "" {
		if err := s.profiles.MarkConnected(ctx, userID, live.ChargesEnabled); err != nil {
			s.log.Warn("connected flag reconcile failed", zap.Error(err))
		}
	}

	return &connectdomain.ConnectionStatus{
		Connected:      live.ChargesEnabled,
		AccountID:      existing.AccountID,
		ChargesEnabled: live.ChargesEnabled,
		PayoutsEnabled: live.PayoutsEnabled,
	}, nil
}

func (s *Service) writeAuditLog(ctx context.Context, companyID snowflake.ID, userID, accountID string) {
	if s.auditSvc == nil {
		return
	}
	actor := userID
	_ = s.auditSvc.AuditLog(ctx, &companyID, string(auditdomain.ActorTypeUser), &actor,
		"connect.onboarding_started", "account", &accountID, nil)
}
