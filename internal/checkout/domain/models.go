package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// RoutingMethod says which account a checkout charge settles on.
type RoutingMethod string

const (
	RoutePlatform RoutingMethod = "platform"
	RouteConnect  RoutingMethod = "connect"
)

// RoutingDecision is the account router's output for one checkout attempt.
type RoutingDecision struct {
	Method    RoutingMethod
	AccountID string

	// ChargesEnabled reflects the live processor check when Method is connect.
	ChargesEnabled bool
}

// CreatePaymentRequest starts checkout for an existing job.
type CreatePaymentRequest struct {
	JobID snowflake.ID `json:"job_id"`
}

// PricingInfo is the customer-facing fee breakdown, in major currency units.
type PricingInfo struct {
	BasePrice          float64 `json:"base_price"`
	PlatformFee        float64 `json:"platform_fee"`
	TotalCustomerPays  float64 `json:"total_customer_pays"`
	FeePercentage      float64 `json:"fee_percentage"`
	ConnectAccountUsed bool    `json:"connect_used"`
}

// RoutingInfo exposes how the charge was routed, in minor units.
type RoutingInfo struct {
	Method             string `json:"method"`
	DestinationAccount string `json:"destination_account,omitempty"`
	BaseAmountCents    int64  `json:"base_amount_cents"`
	FeeAmountCents     int64  `json:"fee_amount_cents"`
	ChargesEnabled     bool   `json:"charges_enabled"`
}

// CreatePaymentResponse is always returned with HTTP 200; Success carries the
// application-level outcome.
type CreatePaymentResponse struct {
	Success     bool         `json:"success"`
	URL         string       `json:"url,omitempty"`
	SessionID   string       `json:"sessionId,omitempty"`
	PricingInfo *PricingInfo `json:"pricing_info,omitempty"`
	RoutingInfo *RoutingInfo `json:"routing_info,omitempty"`
	Warning     string       `json:"warning,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Service creates payment links for jobs.
type Service interface {
	CreatePayment(ctx context.Context, companyID snowflake.ID, req CreatePaymentRequest) (*CreatePaymentResponse, error)
}

var (
	ErrAmountBelowMinimum = errors.New("amount_below_minimum")
	ErrJobAlreadyPaid     = errors.New("job_already_paid")
)
