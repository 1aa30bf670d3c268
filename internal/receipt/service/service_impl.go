package service

import (
	"context"
	"math"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	clientdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/client/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/clock"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
	receiptdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/render"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     receiptdomain.Repository
	JobRepo  jobdomain.Repository
	Clients  clientdomain.Service
	Renderer render.Renderer
}

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     receiptdomain.Repository
	jobRepo  jobdomain.Repository
	clients  clientdomain.Service
	renderer render.Renderer
}

func NewService(p Params) receiptdomain.Service {
	return &Service{
		log:      p.Log.Named("receipt.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		jobRepo:  p.JobRepo,
		clients:  p.Clients,
		renderer: p.Renderer,
	}
}

func (s *Service) GenerateForPayment(ctx context.Context, companyID, jobID snowflake.ID, sessionID string, amountPaidCents int64) (*receiptdomain.Receipt, error) {
	if companyID == 0 || jobID == 0 || sessionID == "" {
		return nil, receiptdomain.ErrInvalidReceipt
	}

	if existing, err := s.repo.FindBySessionID(ctx, sessionID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	job, err := s.jobRepo.Find(ctx, companyID, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, jobdomain.ErrJobNotFound
	}

	base, fee := amounts(job, amountPaidCents)

	input := render.RenderInput{
		JobTitle:        job.Title,
		JobReference:    jobReference(jobID),
		SessionID:       sessionID,
		PaidAt:          s.clock.Now(),
		BaseAmountCents: base,
		FeeAmountCents:  fee,
		PaidAmountCents: amountPaidCents,
		Currency:        "usd",
	}
	if client, err := s.clients.GetByID(ctx, companyID, job.ClientID); err == nil {
		input.ClientName = client.Name
		input.ClientEmail = client.Email
	}

	id := s.genID.Generate()
	input.ReceiptNumber = id.String()

	html, err := s.renderer.RenderHTML(input)
	if err != nil {
		return nil, err
	}

	receipt := &receiptdomain.Receipt{
		ID:              id,
		CompanyID:       companyID,
		JobID:           jobID,
		SessionID:       sessionID,
		AmountPaidCents: amountPaidCents,
		BaseAmountCents: base,
		FeeAmountCents:  fee,
		HTML:            html,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, receipt); err != nil {
		// A concurrent webhook delivery may have won the unique session
		// index race. Return its receipt instead.
		if existing, findErr := s.repo.FindBySessionID(ctx, sessionID); findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}

	if err := s.jobRepo.AttachReceipt(ctx, companyID, jobID, receipt.ID); err != nil {
		s.log.Warn("receipt attach failed",
			zap.Int64("job_id", int64(jobID)),
			zap.Error(err))
	}
	return receipt, nil
}

func (s *Service) GetByID(ctx context.Context, companyID, id snowflake.ID) (*receiptdomain.Receipt, error) {
	if companyID == 0 || id == 0 {
		return nil, receiptdomain.ErrInvalidReceipt
	}
	receipt, err := s.repo.Find(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, receiptdomain.ErrReceiptNotFound
	}
	return receipt, nil
}

func (s *Service) FindBySessionID(ctx context.Context, sessionID string) (*receiptdomain.Receipt, error) {
	return s.repo.FindBySessionID(ctx, sessionID)
}

// jobReference shortens the job id to the fragment printed on the receipt.
func jobReference(id snowflake.ID) string {
	raw := id.String()
	if len(raw) > 8 {
		return raw[len(raw)-8:]
	}
	return raw
}

// amounts resolves the base and fee for a receipt. The breakdown persisted at
// link generation wins; only legacy jobs without one fall back to deriving
// the fee from the amount actually paid.
func amounts(job *jobdomain.Job, amountPaidCents int64) (base, fee int64) {
	if job.BaseAmountCents != nil {
		base = *job.BaseAmountCents
	} else {
		base = int64(math.Round(job.Price * 100))
	}
	if job.FeeAmountCents != nil {
		fee = *job.FeeAmountCents
		return base, fee
	}
	fee = amountPaidCents - base
	if fee < 0 {
		fee = 0
	}
	return base, fee
}
