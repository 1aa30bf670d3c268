package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	jobdomain "github.com/bobbyleu1/bleu-smart-flow-deploy/internal/job/domain"
)

func setupJobTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "jobs.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&jobdomain.Job{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func insertJob(t *testing.T, repo jobdomain.Repository, job *jobdomain.Job) {
	t.Helper()
	if err := repo.Insert(context.Background(), job); err != nil {
		t.Fatalf("insert job: %v", err)
	}
}

func testJob(id, companyID int64) *jobdomain.Job {
	return &jobdomain.Job{
		ID:          snowflake.ID(id),
		CompanyID:   snowflake.ID(companyID),
		ClientID:    snowflake.ID(500),
		Title:       "Gutter cleaning",
		Price:       120.00,
		Status:      jobdomain.StatusPending,
		ScheduledAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestFindScopedToCompany(t *testing.T) {
	repo := Provide(setupJobTestDB(t))
	insertJob(t, repo, testJob(1, 10))

	job, err := repo.Find(context.Background(), snowflake.ID(10), snowflake.ID(1))
	if err != nil || job == nil {
		t.Fatalf("expected job for owner, got %v, %v", job, err)
	}

	other, err := repo.Find(context.Background(), snowflake.ID(99), snowflake.ID(1))
	if err != nil {
		t.Fatalf("cross-tenant find: %v", err)
	}
	if other != nil {
		t.Fatalf("job leaked across tenants")
	}
}

func TestMarkPaidTransitionsOnce(t *testing.T) {
	repo := Provide(setupJobTestDB(t))
	insertJob(t, repo, testJob(1, 10))

	paidAt := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	changed, err := repo.MarkPaid(context.Background(), snowflake.ID(10), snowflake.ID(1), paidAt)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if !changed {
		t.Fatalf("first transition must change the row")
	}

	changed, err = repo.MarkPaid(context.Background(), snowflake.ID(10), snowflake.ID(1), paidAt.Add(time.Hour))
	if err != nil {
		t.Fatalf("second mark paid: %v", err)
	}
	if changed {
		t.Fatalf("replay must not change the row")
	}

	job, err := repo.Find(context.Background(), snowflake.ID(10), snowflake.ID(1))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if job.Status != jobdomain.StatusPaid {
		t.Fatalf("status = %s, want paid", job.Status)
	}
	if job.PaidAt == nil || !job.PaidAt.Equal(paidAt) {
		t.Fatalf("paid_at must keep the first timestamp, got %v", job.PaidAt)
	}
}

func TestSetPaymentLinkPersistsBreakdown(t *testing.T) {
	repo := Provide(setupJobTestDB(t))
	insertJob(t, repo, testJob(1, 10))

	link := jobdomain.PaymentLink{
		URL:              "https://checkout.test/cs_1",
		BaseAmountCents:  12000,
		FeeAmountCents:   378,
		TotalAmountCents: 12378,
		RoutingMethod:    "connect",
	}
	if err := repo.SetPaymentLink(context.Background(), snowflake.ID(10), snowflake.ID(1), link); err != nil {
		t.Fatalf("set payment link: %v", err)
	}

	job, err := repo.Find(context.Background(), snowflake.ID(10), snowflake.ID(1))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if job.PaymentLinkURL == nil || *job.PaymentLinkURL != link.URL {
		t.Fatalf("link url not persisted")
	}
	if job.BaseAmountCents == nil || *job.BaseAmountCents != 12000 {
		t.Fatalf("base not persisted")
	}
	if job.FeeAmountCents == nil || *job.FeeAmountCents != 378 {
		t.Fatalf("fee not persisted")
	}
	if job.RoutingMethod == nil || *job.RoutingMethod != "connect" {
		t.Fatalf("routing method not persisted")
	}
	if job.Status != jobdomain.StatusPending {
		t.Fatalf("link generation must not touch status")
	}
}

func TestListRecurringDueWindow(t *testing.T) {
	repo := Provide(setupJobTestDB(t))

	weekly := jobdomain.FrequencyWeekly
	inWindow := testJob(1, 10)
	inWindow.IsRecurring = true
	inWindow.Frequency = &weekly
	inWindow.ScheduledAt = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	insertJob(t, repo, inWindow)

	outOfWindow := testJob(2, 10)
	outOfWindow.IsRecurring = true
	outOfWindow.Frequency = &weekly
	outOfWindow.ScheduledAt = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	insertJob(t, repo, outOfWindow)

	oneOff := testJob(3, 10)
	oneOff.ScheduledAt = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	insertJob(t, repo, oneOff)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	due, err := repo.ListRecurringDue(context.Background(), from, to)
	if err != nil {
		t.Fatalf("list recurring due: %v", err)
	}
	if len(due) != 1 || due[0].ID != snowflake.ID(1) {
		t.Fatalf("expected only the in-window recurring job, got %+v", due)
	}
}

func TestOccurrenceExists(t *testing.T) {
	repo := Provide(setupJobTestDB(t))
	job := testJob(1, 10)
	insertJob(t, repo, job)

	exists, err := repo.OccurrenceExists(context.Background(), job.CompanyID, job.ClientID, job.Title, job.ScheduledAt)
	if err != nil {
		t.Fatalf("occurrence exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected existing occurrence to be found")
	}

	exists, err = repo.OccurrenceExists(context.Background(), job.CompanyID, job.ClientID, job.Title, job.ScheduledAt.Add(7*24*time.Hour))
	if err != nil {
		t.Fatalf("occurrence exists: %v", err)
	}
	if exists {
		t.Fatalf("future occurrence must not exist yet")
	}
}
