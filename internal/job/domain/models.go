package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status is the job lifecycle state. Transitions are monotonic in practice:
// pending jobs become paid; there is no paid to pending reversal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCompleted Status = "completed"
	StatusTest      Status = "test"
)

// Frequency applies only to recurring jobs.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Interval returns the spacing between occurrences.
func (f Frequency) Interval() time.Duration {
	switch f {
	case FrequencyWeekly:
		return 7 * 24 * time.Hour
	case FrequencyBiWeekly:
		return 14 * 24 * time.Hour
	case FrequencyMonthly:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// Job is a unit of billable work belonging to exactly one tenant and client.
// Price is in major currency units; the persisted pricing breakdown from link
// generation is in minor units.
type Job struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID `gorm:"not null;index" json:"company_id"`
	ClientID  snowflake.ID `gorm:"not null;index" json:"client_id"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	Price     float64      `gorm:"type:numeric(12,2);not null" json:"price"`
	Status    Status       `gorm:"type:text;not null;default:'pending'" json:"status"`

	ScheduledAt time.Time  `gorm:"not null" json:"scheduled_at"`
	IsRecurring bool       `gorm:"not null;default:false" json:"is_recurring"`
	Frequency   *Frequency `gorm:"type:text" json:"frequency"`
	NotifyPhone *string    `gorm:"type:text" json:"notify_phone"`

	// Payment link state. The pricing breakdown is persisted at generation
	// time so receipts never recompute from a later-edited price.
	PaymentLinkURL   *string `gorm:"type:text" json:"payment_link_url"`
	BaseAmountCents  *int64  `json:"base_amount_cents"`
	FeeAmountCents   *int64  `json:"fee_amount_cents"`
	TotalAmountCents *int64  `json:"total_amount_cents"`
	RoutingMethod    *string `gorm:"type:text" json:"routing_method"`

	PaidAt    *time.Time    `json:"paid_at"`
	ReceiptID *snowflake.ID `gorm:"index" json:"receipt_id"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Job) TableName() string { return "jobs" }
