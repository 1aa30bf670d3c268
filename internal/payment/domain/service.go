package domain

import (
	"context"
	"errors"
)

// Service reconciles verified processor events against local payment state.
type Service interface {
	// IngestWebhook verifies and applies one raw webhook delivery. A nil or
	// ErrEventAlreadyProcessed result means the delivery is acknowledged.
	IngestWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

var (
	ErrInvalidEvent          = errors.New("invalid_event")
	ErrEventAlreadyProcessed = errors.New("event_already_processed")
)
