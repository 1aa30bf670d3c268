package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	auditdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/audit/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/clock"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
	paymentdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/payment/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
	receiptdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/domain"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Verifier   processor.EventVerifier
	Repo       paymentdomain.Repository
	JobRepo    jobdomain.Repository
	ReceiptSvc receiptdomain.Service
	AuditSvc   auditdomain.Service
}

type Service struct {
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	verifier   processor.EventVerifier
	repo       paymentdomain.Repository
	jobRepo    jobdomain.Repository
	receiptSvc receiptdomain.Service
	auditSvc   auditdomain.Service
}

func NewService(p Params) paymentdomain.Service {
	return &Service{
		log:        p.Log.Named("payment.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		verifier:   p.Verifier,
		repo:       p.Repo,
		jobRepo:    p.JobRepo,
		receiptSvc: p.ReceiptSvc,
		auditSvc:   p.AuditSvc,
	}
}

// IngestWebhook applies one webhook delivery. Nothing in the payload is
// trusted until the signature verifies. The job's paid transition is the
// commit point; receipt generation afterwards is best effort and recoverable
// on redelivery.
func (s *Service) IngestWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.verifier.VerifyEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	// Only completed checkouts change state. Everything else is acknowledged
	// so the processor stops redelivering it.
	if event.Type != processor.EventTypeCheckoutCompleted {
		s.log.Debug("ignoring webhook event", zap.String("type", event.Type))
		return nil
	}

	jobID, companyID, err := identifiersFromEvent(event)
	if err != nil {
		return err
	}

	// Replay guard one: a receipt for this session means the whole flow
	// already ran to completion.
	if existing, err := s.receiptSvc.FindBySessionID(ctx, event.SessionID); err == nil && existing != nil {
		return paymentdomain.ErrEventAlreadyProcessed
	}

	now := s.clock.Now()
	record := &paymentdomain.EventRecord{
		ID:              s.genID.Generate(),
		CompanyID:       companyID,
		ProviderEventID: event.ID,
		EventType:       event.Type,
		SessionID:       event.SessionID,
		Payload:         datatypes.JSON(payload),
		ReceivedAt:      now,
	}
	inserted, err := s.repo.InsertEvent(ctx, record)
	if err != nil {
		return err
	}
	if !inserted {
		// Replay guard two: the event id was seen before. Reprocess only if
		// the earlier delivery died before finishing.
		stored, err := s.repo.FindEvent(ctx, event.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			return paymentdomain.ErrInvalidEvent
		}
		if stored.ProcessedAt != nil {
			return paymentdomain.ErrEventAlreadyProcessed
		}
		record = stored
	}

	changed, err := s.jobRepo.MarkPaid(ctx, companyID, jobID, now)
	if err != nil {
		return err
	}
	if !changed {
		s.log.Info("job already paid, skipping",
			zap.Int64("job_id", int64(jobID)),
			zap.String("session_id", event.SessionID))
	}

	payment := &paymentdomain.Payment{
		ID:          s.genID.Generate(),
		CompanyID:   companyID,
		JobID:       jobID,
		SessionID:   event.SessionID,
		AmountCents: event.AmountCents,
		CreatedAt:   now,
	}
	if err := s.repo.InsertPayment(ctx, payment); err != nil {
		return err
	}

	if _, err := s.receiptSvc.GenerateForPayment(ctx, companyID, jobID, event.SessionID, event.AmountCents); err != nil {
		// The payment is committed and the event is acked, so the
		// processor will not retry on its own. Withholding the processed
		// marker lets a manual replay or duplicate delivery of this event
		// fill in the missing receipt.
		s.log.Error("receipt generation failed",
			zap.Int64("job_id", int64(jobID)),
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		return nil
	}

	if err := s.repo.MarkProcessed(ctx, record.ID, s.clock.Now()); err != nil {
		s.log.Warn("event processed marker failed", zap.Error(err))
	}

	s.writeAuditLog(ctx, companyID, jobID, event)
	return nil
}

func identifiersFromEvent(event *processor.Event) (jobID, companyID snowflake.ID, err error) {
	if event.SessionID == "" || event.ID == "" {
		return 0, 0, processor.ErrMalformedEvent
	}
	jobID, err = snowflake.ParseString(event.Metadata["job_id"])
	if err != nil || jobID == 0 {
		return 0, 0, processor.ErrMalformedEvent
	}
	companyID, err = snowflake.ParseString(event.Metadata["company_id"])
	if err != nil || companyID == 0 {
		return 0, 0, processor.ErrMalformedEvent
	}
	return jobID, companyID, nil
}

func (s *Service) writeAuditLog(ctx context.Context, companyID, jobID snowflake.ID, event *processor.Event) {
	if s.auditSvc == nil {
		return
	}
	targetID := jobID.String()
	_ = s.auditSvc.AuditLog(ctx, &companyID, string(auditdomain.ActorTypeSystem), nil,
		"payment.settled", "job", &targetID, map[string]any{
			"provider_event_id": event.ID,
			"session_id":        event.SessionID,
			"amount_cents":      event.AmountCents,
		})
}
