package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role distinguishes the company owner from invited teammates.
type Role string

const (
	RoleInvoiceOwner Role = "invoice_owner"
	RoleTeammate     Role = "teammate"
)

// Profile is the per-user record created at first sign-in. The company id is
// the tenant partition key shared with clients and jobs.
type Profile struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID    string        `gorm:"type:text;not null;uniqueIndex" json:"user_id"`
	Email     string        `gorm:"type:text;not null" json:"email"`
	CompanyID *snowflake.ID `gorm:"index" json:"company_id"`
	Role      Role          `gorm:"type:text;not null;default:'invoice_owner'" json:"role"`
	IsDemo    bool          `gorm:"not null;default:false" json:"is_demo"`

	// Connected payment account, populated asynchronously after onboarding.
	StripeAccountID *string `gorm:"type:text" json:"stripe_account_id"`
	StripeConnected bool    `gorm:"not null;default:false" json:"stripe_connected"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "profiles" }

// ConnectedAccount is the router's view of a tenant's payment account.
type ConnectedAccount struct {
	AccountID string
	Marked    bool
}
