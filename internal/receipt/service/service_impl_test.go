package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	clientdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/client/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/clock"
	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
	receiptdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/domain"
	"github.com/bobbyleu1/bleu-smart-flow-deploy/internal/receipt/render"
)

type fakeReceiptRepo struct {
	bySession map[string]*receiptdomain.Receipt
	byID      map[snowflake.ID]*receiptdomain.Receipt
	inserts   int
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{
		bySession: map[string]*receiptdomain.Receipt{},
		byID:      map[snowflake.ID]*receiptdomain.Receipt{},
	}
}

func (f *fakeReceiptRepo) Insert(_ context.Context, receipt *receiptdomain.Receipt) error {
	f.inserts++
	f.bySession[receipt.SessionID] = receipt
	f.byID[receipt.ID] = receipt
	return nil
}

func (f *fakeReceiptRepo) Find(_ context.Context, companyID, id snowflake.ID) (*receiptdomain.Receipt, error) {
	receipt, ok := f.byID[id]
	if !ok || receipt.CompanyID != companyID {
		return nil, nil
	}
	return receipt, nil
}

func (f *fakeReceiptRepo) FindBySessionID(_ context.Context, sessionID string) (*receiptdomain.Receipt, error) {
	return f.bySession[sessionID], nil
}

type fakeJobStore struct {
	job        *jobdomain.Job
	attachedTo snowflake.ID
}

func (f *fakeJobStore) Find(_ context.Context, companyID, id snowflake.ID) (*jobdomain.Job, error) {
	if f.job == nil || f.job.CompanyID != companyID || f.job.ID != id {
		return nil, nil
	}
	return f.job, nil
}

func (f *fakeJobStore) ListByCompany(context.Context, snowflake.ID) ([]jobdomain.Job, error) {
	return nil, nil
}
func (f *fakeJobStore) Insert(context.Context, *jobdomain.Job) error { return nil }
func (f *fakeJobStore) Save(context.Context, *jobdomain.Job) error   { return nil }
func (f *fakeJobStore) DeleteByID(context.Context, snowflake.ID, snowflake.ID) (bool, error) {
	return false, nil
}
func (f *fakeJobStore) SetPaymentLink(context.Context, snowflake.ID, snowflake.ID, jobdomain.PaymentLink) error {
	return nil
}
func (f *fakeJobStore) MarkPaid(context.Context, snowflake.ID, snowflake.ID, time.Time) (bool, error) {
	return false, nil
}

func (f *fakeJobStore) AttachReceipt(_ context.Context, _, _ snowflake.ID, receiptID snowflake.ID) error {
	f.attachedTo = receiptID
	return nil
}

func (f *fakeJobStore) ListRecurringDue(context.Context, time.Time, time.Time) ([]jobdomain.Job, error) {
	return nil, nil
}

func (f *fakeJobStore) OccurrenceExists(context.Context, snowflake.ID, snowflake.ID, string, time.Time) (bool, error) {
	return false, nil
}

type fakeClients struct {
	client *clientdomain.Client
}

func (f *fakeClients) Create(context.Context, snowflake.ID, clientdomain.CreateClientRequest) (*clientdomain.Client, error) {
	return nil, clientdomain.ErrInvalidID
}
func (f *fakeClients) List(context.Context, snowflake.ID) ([]clientdomain.Client, error) {
	return nil, nil
}
func (f *fakeClients) GetByID(context.Context, snowflake.ID, snowflake.ID) (*clientdomain.Client, error) {
	if f.client == nil {
		return nil, clientdomain.ErrClientNotFound
	}
	return f.client, nil
}
func (f *fakeClients) Update(context.Context, snowflake.ID, snowflake.ID, clientdomain.UpdateClientRequest) (*clientdomain.Client, error) {
	return nil, clientdomain.ErrClientNotFound
}
func (f *fakeClients) Delete(context.Context, snowflake.ID, snowflake.ID) error {
	return clientdomain.ErrClientNotFound
}

func newReceiptService(repo *fakeReceiptRepo, jobs *fakeJobStore) *Service {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return &Service{
		log:      zap.NewNop(),
		genID:    node,
		clock:    clock.Fixed{At: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		repo:     repo,
		jobRepo:  jobs,
		clients:  &fakeClients{client: &clientdomain.Client{Name: "Dana", Email: "dana@example.com"}},
		renderer: render.NewRenderer(),
	}
}

func paidJob(companyID snowflake.ID) *jobdomain.Job {
	base := int64(4999)
	fee := int64(275)
	total := int64(5274)
	return &jobdomain.Job{
		ID:               snowflake.ID(1001),
		CompanyID:        companyID,
		ClientID:         snowflake.ID(2001),
		Title:            "Lawn service",
		Price:            49.99,
		Status:           jobdomain.StatusPaid,
		BaseAmountCents:  &base,
		FeeAmountCents:   &fee,
		TotalAmountCents: &total,
	}
}

func TestGenerateUsesPersistedBreakdown(t *testing.T) {
	companyID := snowflake.ID(42)
	jobs := &fakeJobStore{job: paidJob(companyID)}
	repo := newFakeReceiptRepo()
	svc := newReceiptService(repo, jobs)

	receipt, err := svc.GenerateForPayment(context.Background(), companyID, 1001, "cs_test_123", 5274)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if receipt.BaseAmountCents != 4999 || receipt.FeeAmountCents != 275 {
		t.Fatalf("breakdown = %d/%d, want 4999/275", receipt.BaseAmountCents, receipt.FeeAmountCents)
	}
	if receipt.BaseAmountCents+receipt.FeeAmountCents != receipt.AmountPaidCents {
		t.Fatalf("base+fee must equal amount paid")
	}
	if jobs.attachedTo != receipt.ID {
		t.Fatalf("receipt not attached to job")
	}
	if !strings.Contains(receipt.HTML, "Lawn service") {
		t.Fatalf("rendered receipt missing job title")
	}
	if !strings.Contains(receipt.HTML, "USD 52.74") {
		t.Fatalf("rendered receipt missing total, got %q", receipt.HTML)
	}
	if !strings.Contains(receipt.HTML, "Session cs_test_123") {
		t.Fatalf("rendered receipt missing session id")
	}
	if !strings.Contains(receipt.HTML, "Job 1001") {
		t.Fatalf("rendered receipt missing job reference")
	}
}

func TestGenerateLegacyJobDerivesFee(t *testing.T) {
	companyID := snowflake.ID(42)
	job := paidJob(companyID)
	job.BaseAmountCents = nil
	job.FeeAmountCents = nil
	job.TotalAmountCents = nil
	jobs := &fakeJobStore{job: job}
	svc := newReceiptService(newFakeReceiptRepo(), jobs)

	receipt, err := svc.GenerateForPayment(context.Background(), companyID, 1001, "cs_test_123", 5274)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if receipt.BaseAmountCents != 4999 {
		t.Fatalf("base = %d, want 4999 from job price", receipt.BaseAmountCents)
	}
	if receipt.FeeAmountCents != 275 {
		t.Fatalf("fee = %d, want 275 derived from amount paid", receipt.FeeAmountCents)
	}
}

func TestGenerateIsIdempotentPerSession(t *testing.T) {
	companyID := snowflake.ID(42)
	jobs := &fakeJobStore{job: paidJob(companyID)}
	repo := newFakeReceiptRepo()
	svc := newReceiptService(repo, jobs)

	first, err := svc.GenerateForPayment(context.Background(), companyID, 1001, "cs_test_123", 5274)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := svc.GenerateForPayment(context.Background(), companyID, 1001, "cs_test_123", 5274)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("replay produced a new receipt")
	}
	if repo.inserts != 1 {
		t.Fatalf("expected one insert, got %d", repo.inserts)
	}
}

func TestGetByIDScopedToCompany(t *testing.T) {
	companyID := snowflake.ID(42)
	jobs := &fakeJobStore{job: paidJob(companyID)}
	repo := newFakeReceiptRepo()
	svc := newReceiptService(repo, jobs)

	receipt, err := svc.GenerateForPayment(context.Background(), companyID, 1001, "cs_test_123", 5274)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), snowflake.ID(7), receipt.ID); err != receiptdomain.ErrReceiptNotFound {
		t.Fatalf("cross-tenant read must fail, got %v", err)
	}
	got, err := svc.GetByID(context.Background(), companyID, receipt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != receipt.ID {
		t.Fatalf("wrong receipt returned")
	}
}
