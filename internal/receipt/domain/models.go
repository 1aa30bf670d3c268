package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Receipt is the immutable record generated after a payment settles. Amounts
// are frozen at generation time; later job edits never change a receipt.
type Receipt struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID `gorm:"not null;index" json:"company_id"`
	JobID     snowflake.ID `gorm:"not null;index" json:"job_id"`
	SessionID string       `gorm:"type:text;not null;uniqueIndex" json:"session_id"`

	AmountPaidCents int64 `gorm:"not null" json:"amount_paid_cents"`
	BaseAmountCents int64 `gorm:"not null" json:"base_amount_cents"`
	FeeAmountCents  int64 `gorm:"not null" json:"fee_amount_cents"`

	HTML string `gorm:"type:text;not null" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Receipt) TableName() string { return "receipts" }

// Service generates and serves receipts.
type Service interface {
	// GenerateForPayment creates the receipt for a settled checkout session.
	// It is idempotent on session id.
	GenerateForPayment(ctx context.Context, companyID, jobID snowflake.ID, sessionID string, amountPaidCents int64) (*Receipt, error)

	GetByID(ctx context.Context, companyID, id snowflake.ID) (*Receipt, error)

	// FindBySessionID reports whether a session has already produced a
	// receipt. Used by webhook replay detection.
	FindBySessionID(ctx context.Context, sessionID string) (*Receipt, error)
}

type Repository interface {
	Insert(ctx context.Context, receipt *Receipt) error
	Find(ctx context.Context, companyID, id snowflake.ID) (*Receipt, error)
	FindBySessionID(ctx context.Context, sessionID string) (*Receipt, error)
}

var (
	ErrReceiptNotFound = errors.New("receipt_not_found")
	ErrInvalidReceipt  = errors.New("invalid_receipt")
)
