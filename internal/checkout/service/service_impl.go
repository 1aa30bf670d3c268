package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	auditdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/audit/domain"
	checkoutdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/checkout/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/config"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/fee"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/notify"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
)

// connectFallbackWarning is surfaced to the caller when a connect-routed
// session fails and the charge lands on the platform account instead.
const connectFallbackWarning = "connected account unavailable; payment will settle on the platform account"

type Params struct {
	fx.In

	Cfg       config.Config
	Log       *zap.Logger
	JobRepo   jobdomain.Repository
	Router    *Router
	Processor processor.Client
	Notifier  notify.Notifier
	AuditSvc  auditdomain.Service
}

type Service struct {
	cfg       config.Config
	log       *zap.Logger
	jobRepo   jobdomain.Repository
	router    *Router
	processor processor.Client
	notifier  notify.Notifier
	auditSvc  auditdomain.Service
}

func NewService(p Params) checkoutdomain.Service {
	return &Service{
		cfg:       p.Cfg,
		log:       p.Log.Named("checkout.service"),
		jobRepo:   p.JobRepo,
		router:    p.Router,
		processor: p.Processor,
		notifier:  p.Notifier,
		auditSvc:  p.AuditSvc,
	}
}

// CreatePayment builds and persists a payment link for a pending job.
// Application-level failures come back in the response body, never as a
// transport error.
func (s *Service) CreatePayment(ctx context.Context, companyID snowflake.ID, req checkoutdomain.CreatePaymentRequest) (*checkoutdomain.CreatePaymentResponse, error) {
	if companyID == 0 || req.JobID == 0 {
		return failure(jobdomain.ErrInvalidJobID), nil
	}

	job, err := s.jobRepo.Find(ctx, companyID, req.JobID)
	if err != nil {
		s.log.Error("job lookup failed", zap.Error(err))
		return failure(jobdomain.ErrJobNotFound), nil
	}
	if job == nil {
		return failure(jobdomain.ErrJobNotFound), nil
	}
	if job.Status == jobdomain.StatusPaid {
		return failure(checkoutdomain.ErrJobAlreadyPaid), nil
	}

	pricing, err := PriceJob(job)
	if err != nil {
		if errors.Is(err, fee.ErrInvalidAmount) {
			return failure(jobdomain.ErrInvalidPrice), nil
		}
		return failure(err), nil
	}

	decision := s.router.Route(ctx, companyID)
	spec := BuildSpec(job, pricing, decision, s.cfg.AppBaseURL)

	warning := ""
	session, err := s.processor.CreateCheckoutSession(ctx, spec)
	if err != nil && decision.Method == checkoutdomain.RouteConnect {
		// One platform retry. Connect account state can lag the live check.
		s.log.Warn("connect session failed, retrying on platform",
			zap.String("account_id", decision.AccountID),
			zap.Error(err))
		decision = checkoutdomain.RoutingDecision{Method: checkoutdomain.RoutePlatform}
		warning = connectFallbackWarning
		session, err = s.processor.CreateCheckoutSession(ctx, spec.WithoutConnect())
	}
	if err != nil {
		s.log.Error("checkout session creation failed",
			zap.Int64("job_id", int64(job.ID)),
			zap.Error(err))
		return failure(processor.ErrSessionFailed), nil
	}

	link := jobdomain.PaymentLink{
		URL:              session.URL,
		BaseAmountCents:  pricing.BaseCents,
		FeeAmountCents:   pricing.FeeCents,
		TotalAmountCents: pricing.TotalCents,
		RoutingMethod:    string(decision.Method),
	}
	if err := s.jobRepo.SetPaymentLink(ctx, companyID, job.ID, link); err != nil {
		// The session exists at the processor either way; surface the link
		// and reconcile on the webhook.
		s.log.Error("payment link persistence failed",
			zap.Int64("job_id", int64(job.ID)),
			zap.Error(err))
	}

	s.notifyCustomer(ctx, job, session.URL, pricing)
	s.writeAuditLog(ctx, job, session, decision, pricing)

	return &checkoutdomain.CreatePaymentResponse{
		Success:   true,
		URL:       session.URL,
		SessionID: session.ID,
		PricingInfo: &checkoutdomain.PricingInfo{
			BasePrice:          cents(pricing.BaseCents),
			PlatformFee:        cents(pricing.FeeCents),
			TotalCustomerPays:  cents(pricing.TotalCents),
			FeePercentage:      pricing.Rate * 100,
			ConnectAccountUsed: decision.Method == checkoutdomain.RouteConnect,
		},
		RoutingInfo: &checkoutdomain.RoutingInfo{
			Method:             string(decision.Method),
			DestinationAccount: decision.AccountID,
			BaseAmountCents:    pricing.BaseCents,
			FeeAmountCents:     pricing.FeeCents,
			ChargesEnabled:     decision.ChargesEnabled,
		},
		Warning: warning,
	}, nil
}

func (s *Service) notifyCustomer(ctx context.Context, job *jobdomain.Job, url string, pricing Pricing) {
	if job.NotifyPhone == nil || *job.NotifyPhone == "" {
		return
	}
	msg := notify.PaymentLinkMessage{
		Phone:      *job.NotifyPhone,
		JobTitle:   job.Title,
		PaymentURL: url,
		AmountUSD:  fmt.Sprintf("%.2f", cents(pricing.TotalCents)),
	}
	if err := s.notifier.SendPaymentLink(ctx, msg); err != nil {
		s.log.Warn("payment link notification failed",
			zap.Int64("job_id", int64(job.ID)),
			zap.Error(err))
	}
}

func (s *Service) writeAuditLog(ctx context.Context, job *jobdomain.Job, session *processor.CheckoutSession, decision checkoutdomain.RoutingDecision, pricing Pricing) {
	if s.auditSvc == nil {
		return
	}
	targetID := job.ID.String()
	_ = s.auditSvc.AuditLog(ctx, &job.CompanyID, string(auditdomain.ActorTypeUser), nil,
		"payment_link.created", "job", &targetID, map[string]any{
			"session_id":         session.ID,
			"routing_method":     string(decision.Method),
			"base_amount_cents":  pricing.BaseCents,
			"fee_amount_cents":   pricing.FeeCents,
			"total_amount_cents": pricing.TotalCents,
		})
}

func failure(err error) *checkoutdomain.CreatePaymentResponse {
	return &checkoutdomain.CreatePaymentResponse{Success: false, Error: err.Error()}
}

func cents(v int64) float64 { return float64(v) / 100 }
