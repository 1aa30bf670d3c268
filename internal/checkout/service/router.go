package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	checkoutdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/checkout/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
	profiledomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/profile/domain"
)

// Router decides whether a charge settles on the tenant's connected account
// or on the platform account. Every uncertain path falls back to platform so
// a checkout is never blocked by account state.
type Router struct {
	profiles          profiledomain.Service
	processor         processor.Client
	platformAccountID string
	log               *zap.Logger
}

func NewRouter(profiles profiledomain.Service, client processor.Client, platformAccountID string, log *zap.Logger) *Router {
	return &Router{
		profiles:          profiles,
		processor:         client,
		platformAccountID: platformAccountID,
		log:               log.Named("checkout.router"),
	}
}

// Route resolves the destination for one checkout attempt.
func (r *Router) Route(ctx context.Context, companyID snowflake.ID) checkoutdomain.RoutingDecision {
	platform := checkoutdomain.RoutingDecision{Method: checkoutdomain.RoutePlatform}

	account, err := r.profiles.ConnectedAccount(ctx, companyID)
	if err != nil {
		r.log.Warn("connected account lookup failed, routing to platform",
			zap.Int64("company_id", int64(companyID)),
			zap.Error(err))
		return platform
	}
	if account == nil || account.AccountID == "" {
		return platform
	}

	// A tenant configured with the platform's own account would split a
	// charge against itself. Treat it as not connected.
	if account.AccountID == r.platformAccountID {
		r.log.Warn("connected account equals platform account, routing to platform",
			zap.Int64("company_id", int64(companyID)))
		return platform
	}

	live, err := r.processor.GetAccount(ctx, account.AccountID)
	if err != nil {
		r.log.Warn("live account check failed, routing to platform",
			zap.String("account_id", account.AccountID),
			zap.Error(err))
		return platform
	}
	if !live.ChargesEnabled {
		r.log.Info("connected account cannot take charges yet, routing to platform",
			zap.String("account_id", account.AccountID))
		return platform
	}

	return checkoutdomain.RoutingDecision{
		Method:         checkoutdomain.RouteConnect,
		AccountID:      account.AccountID,
		ChargesEnabled: true,
	}
}
