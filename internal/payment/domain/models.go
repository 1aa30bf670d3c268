package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// EventRecord stores every verified webhook event exactly once. The unique
// provider event id is the replay guard.
type EventRecord struct {
	ID              snowflake.ID   `gorm:"primaryKey"`
	CompanyID       snowflake.ID   `gorm:"not null;index"`
	ProviderEventID string         `gorm:"type:text;not null;uniqueIndex"`
	EventType       string         `gorm:"type:text;not null"`
	SessionID       string         `gorm:"type:text;not null;index"`
	Payload         datatypes.JSON `gorm:"type:jsonb"`
	ReceivedAt      time.Time      `gorm:"not null"`
	ProcessedAt     *time.Time
}

// TableName sets the database table name.
func (EventRecord) TableName() string { return "payment_events" }

// Payment is the settled charge derived from a completed checkout session.
type Payment struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID   snowflake.ID `gorm:"not null;index" json:"company_id"`
	JobID       snowflake.ID `gorm:"not null;index" json:"job_id"`
	SessionID   string       `gorm:"type:text;not null;uniqueIndex" json:"session_id"`
	AmountCents int64        `gorm:"not null" json:"amount_cents"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
