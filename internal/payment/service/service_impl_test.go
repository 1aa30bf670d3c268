package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/clock"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
	paymentdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/payment/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/processor"
	receiptdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/domain"
)

type fakeVerifier struct {
	event *processor.Event
	err   error
}

func (f *fakeVerifier) VerifyEvent([]byte, string) (*processor.Event, error) {
	return f.event, f.err
}

type fakeEventRepo struct {
	records   map[string]*paymentdomain.EventRecord
	payments  []*paymentdomain.Payment
	processed []snowflake.ID
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{records: map[string]*paymentdomain.EventRecord{}}
}

func (f *fakeEventRepo) FindEvent(_ context.Context, providerEventID string) (*paymentdomain.EventRecord, error) {
	return f.records[providerEventID], nil
}

func (f *fakeEventRepo) InsertEvent(_ context.Context, event *paymentdomain.EventRecord) (bool, error) {
	if _, ok := f.records[event.ProviderEventID]; ok {
		return false, nil
	}
	f.records[event.ProviderEventID] = event
	return true, nil
}

func (f *fakeEventRepo) MarkProcessed(_ context.Context, id snowflake.ID, processedAt time.Time) error {
	f.processed = append(f.processed, id)
	for _, record := range f.records {
		if record.ID == id {
			at := processedAt
			record.ProcessedAt = &at
		}
	}
	return nil
}

func (f *fakeEventRepo) InsertPayment(_ context.Context, payment *paymentdomain.Payment) error {
	f.payments = append(f.payments, payment)
	return nil
}

type fakePaidJobs struct {
	paid     map[snowflake.ID]bool
	markErr  error
	markCnt  int
	attached int
}

func newFakePaidJobs() *fakePaidJobs {
	return &fakePaidJobs{paid: map[snowflake.ID]bool{}}
}

func (f *fakePaidJobs) Find(context.Context, snowflake.ID, snowflake.ID) (*jobdomain.Job, error) {
	return nil, nil
}
func (f *fakePaidJobs) ListByCompany(context.Context, snowflake.ID) ([]jobdomain.Job, error) {
	return nil, nil
}
func (f *fakePaidJobs) Insert(context.Context, *jobdomain.Job) error { return nil }
func (f *fakePaidJobs) Save(context.Context, *jobdomain.Job) error   { return nil }
func (f *fakePaidJobs) DeleteByID(context.Context, snowflake.ID, snowflake.ID) (bool, error) {
	return false, nil
}
func (f *fakePaidJobs) SetPaymentLink(context.Context, snowflake.ID, snowflake.ID, jobdomain.PaymentLink) error {
	return nil
}

func (f *fakePaidJobs) MarkPaid(_ context.Context, _, id snowflake.ID, _ time.Time) (bool, error) {
	f.markCnt++
	if f.markErr != nil {
		return false, f.markErr
	}
	if f.paid[id] {
		return false, nil
	}
	f.paid[id] = true
	return true, nil
}

func (f *fakePaidJobs) AttachReceipt(context.Context, snowflake.ID, snowflake.ID, snowflake.ID) error {
	f.attached++
	return nil
}
func (f *fakePaidJobs) ListRecurringDue(context.Context, time.Time, time.Time) ([]jobdomain.Job, error) {
	return nil, nil
}
func (f *fakePaidJobs) OccurrenceExists(context.Context, snowflake.ID, snowflake.ID, string, time.Time) (bool, error) {
	return false, nil
}

type fakeReceipts struct {
	bySession map[string]*receiptdomain.Receipt
	genErr    error
	generated int
}

func newFakeReceipts() *fakeReceipts {
	return &fakeReceipts{bySession: map[string]*receiptdomain.Receipt{}}
}

func (f *fakeReceipts) GenerateForPayment(_ context.Context, companyID, jobID snowflake.ID, sessionID string, amountPaidCents int64) (*receiptdomain.Receipt, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	f.generated++
	receipt := &receiptdomain.Receipt{
		ID:              snowflake.ID(int64(9000 + f.generated)),
		CompanyID:       companyID,
		JobID:           jobID,
		SessionID:       sessionID,
		AmountPaidCents: amountPaidCents,
	}
	f.bySession[sessionID] = receipt
	return receipt, nil
}

func (f *fakeReceipts) GetByID(context.Context, snowflake.ID, snowflake.ID) (*receiptdomain.Receipt, error) {
	return nil, receiptdomain.ErrReceiptNotFound
}

func (f *fakeReceipts) FindBySessionID(_ context.Context, sessionID string) (*receiptdomain.Receipt, error) {
	return f.bySession[sessionID], nil
}

func completedEvent() *processor.Event {
	return &processor.Event{
		ID:          "evt_1",
		Type:        processor.EventTypeCheckoutCompleted,
		SessionID:   "cs_test_123",
		AmountCents: 5274,
		Metadata: map[string]string{
			"job_id":     snowflake.ID(1001).String(),
			"company_id": snowflake.ID(42).String(),
		},
	}
}

func newReconciler(verifier *fakeVerifier, repo *fakeEventRepo, jobs *fakePaidJobs, receipts *fakeReceipts) *Service {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return &Service{
		log:        zap.NewNop(),
		genID:      node,
		clock:      clock.Fixed{At: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		verifier:   verifier,
		repo:       repo,
		jobRepo:    jobs,
		receiptSvc: receipts,
	}
}

func TestIngestMarksPaidAndGeneratesReceipt(t *testing.T) {
	repo := newFakeEventRepo()
	jobs := newFakePaidJobs()
	receipts := newFakeReceipts()
	svc := newReconciler(&fakeVerifier{event: completedEvent()}, repo, jobs, receipts)

	if err := svc.IngestWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if !jobs.paid[snowflake.ID(1001)] {
		t.Fatalf("job not marked paid")
	}
	if receipts.generated != 1 {
		t.Fatalf("expected one receipt, got %d", receipts.generated)
	}
	if len(repo.payments) != 1 || repo.payments[0].AmountCents != 5274 {
		t.Fatalf("payment row = %+v", repo.payments)
	}
	if len(repo.processed) != 1 {
		t.Fatalf("event not marked processed")
	}
}

func TestIngestRejectsInvalidSignature(t *testing.T) {
	jobs := newFakePaidJobs()
	svc := newReconciler(&fakeVerifier{err: processor.ErrInvalidSignature}, newFakeEventRepo(), jobs, newFakeReceipts())

	err := svc.IngestWebhook(context.Background(), []byte(`{}`), "bad")
	if !errors.Is(err, processor.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature, got %v", err)
	}
	if jobs.markCnt != 0 {
		t.Fatalf("job state must not change on bad signature")
	}
}

func TestIngestIgnoresOtherEventTypes(t *testing.T) {
	event := completedEvent()
	event.Type = "payment_intent.created"
	jobs := newFakePaidJobs()
	receipts := newFakeReceipts()
	svc := newReconciler(&fakeVerifier{event: event}, newFakeEventRepo(), jobs, receipts)

	if err := svc.IngestWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("ignored event must ack, got %v", err)
	}
	if jobs.markCnt != 0 || receipts.generated != 0 {
		t.Fatalf("ignored event must not change state")
	}
}

func TestIngestRejectsMissingJobMetadata(t *testing.T) {
	event := completedEvent()
	delete(event.Metadata, "job_id")
	svc := newReconciler(&fakeVerifier{event: event}, newFakeEventRepo(), newFakePaidJobs(), newFakeReceipts())

	err := svc.IngestWebhook(context.Background(), []byte(`{}`), "sig")
	if !errors.Is(err, processor.ErrMalformedEvent) {
		t.Fatalf("expected malformed event, got %v", err)
	}
}

func TestIngestReplayIsIdempotent(t *testing.T) {
	repo := newFakeEventRepo()
	jobs := newFakePaidJobs()
	receipts := newFakeReceipts()
	svc := newReconciler(&fakeVerifier{event: completedEvent()}, repo, jobs, receipts)

	if err := svc.IngestWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	err := svc.IngestWebhook(context.Background(), []byte(`{}`), "sig")
	if !errors.Is(err, paymentdomain.ErrEventAlreadyProcessed) {
		t.Fatalf("expected already processed, got %v", err)
	}
	if receipts.generated != 1 {
		t.Fatalf("replay generated a second receipt")
	}
	if jobs.markCnt != 1 {
		t.Fatalf("replay touched the job again")
	}
}

func TestIngestRedeliveryRepairsMissingReceipt(t *testing.T) {
	repo := newFakeEventRepo()
	jobs := newFakePaidJobs()
	receipts := newFakeReceipts()
	receipts.genErr = errors.New("render_failed")
	svc := newReconciler(&fakeVerifier{event: completedEvent()}, repo, jobs, receipts)

	// First delivery settles the payment but cannot produce a receipt.
	if err := svc.IngestWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if len(repo.processed) != 0 {
		t.Fatalf("processed marker must be withheld until the receipt exists")
	}

	// Redelivery finds the unprocessed record and finishes the job.
	receipts.genErr = nil
	if err := svc.IngestWebhook(context.Background(), []byte(`{}`), "sig"); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
	if receipts.generated != 1 {
		t.Fatalf("expected receipt from redelivery, got %d", receipts.generated)
	}
	if len(repo.processed) != 1 {
		t.Fatalf("event must be marked processed after repair")
	}
	if len(repo.payments) != 2 {
		// InsertPayment is conflict-safe on session id; the fake records both
		// calls, the database keeps one row.
		t.Fatalf("expected two insert attempts, got %d", len(repo.payments))
	}
}
