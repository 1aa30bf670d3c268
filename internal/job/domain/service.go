package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateJobRequest struct {
	ClientID    snowflake.ID `json:"client_id"`
	Title       string       `json:"title"`
	Price       float64      `json:"price"`
	ScheduledAt time.Time    `json:"scheduled_at"`
	IsRecurring bool         `json:"is_recurring"`
	Frequency   *Frequency   `json:"frequency"`
	NotifyPhone *string      `json:"notify_phone"`
}

type UpdateJobRequest struct {
	Title       *string    `json:"title"`
	Price       *float64   `json:"price"`
	Status      *Status    `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	NotifyPhone *string    `json:"notify_phone"`
}

// PaymentLink is the persisted result of a successful checkout creation.
type PaymentLink struct {
	URL              string
	BaseAmountCents  int64
	FeeAmountCents   int64
	TotalAmountCents int64
	RoutingMethod    string
}

type Service interface {
	Create(ctx context.Context, companyID snowflake.ID, req CreateJobRequest) (*Job, error)
	List(ctx context.Context, companyID snowflake.ID) ([]Job, error)
	GetByID(ctx context.Context, companyID, id snowflake.ID) (*Job, error)
	Update(ctx context.Context, companyID, id snowflake.ID, req UpdateJobRequest) (*Job, error)
	Delete(ctx context.Context, companyID, id snowflake.ID) error
}

// Repository is the persistence surface shared with the checkout and
// webhook flows.
type Repository interface {
	Find(ctx context.Context, companyID, id snowflake.ID) (*Job, error)
	ListByCompany(ctx context.Context, companyID snowflake.ID) ([]Job, error)
	Insert(ctx context.Context, job *Job) error
	Save(ctx context.Context, job *Job) error
	DeleteByID(ctx context.Context, companyID, id snowflake.ID) (bool, error)

	// SetPaymentLink writes the checkout URL and pricing breakdown. It never
	// touches status or paid timestamps.
	SetPaymentLink(ctx context.Context, companyID, id snowflake.ID, link PaymentLink) error

	// MarkPaid transitions the job to paid exactly once; redelivery of the
	// same completion event is a no-op. It reports whether a row changed.
	MarkPaid(ctx context.Context, companyID, id snowflake.ID, paidAt time.Time) (bool, error)

	// AttachReceipt links a stored receipt onto the job.
	AttachReceipt(ctx context.Context, companyID, id, receiptID snowflake.ID) error

	// ListRecurringDue returns recurring jobs scheduled inside the window.
	ListRecurringDue(ctx context.Context, from, to time.Time) ([]Job, error)

	// OccurrenceExists reports whether a job with the same identity is
	// already scheduled at the given time. Used to keep the recurring
	// worker idempotent across restarts.
	OccurrenceExists(ctx context.Context, companyID, clientID snowflake.ID, title string, at time.Time) (bool, error)
}

var (
	ErrInvalidJobID     = errors.New("invalid_job_id")
	ErrInvalidTitle     = errors.New("invalid_title")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidFrequency = errors.New("invalid_frequency")
	ErrInvalidClient    = errors.New("invalid_client")
	ErrJobNotFound      = errors.New("job_not_found")
)
