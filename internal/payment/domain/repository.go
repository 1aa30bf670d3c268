package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindEvent(ctx context.Context, providerEventID string) (*EventRecord, error)

	// InsertEvent stores the record unless the provider event id already
	// exists. It reports whether this call created the row.
	InsertEvent(ctx context.Context, event *EventRecord) (bool, error)

	MarkProcessed(ctx context.Context, id snowflake.ID, processedAt time.Time) error

	InsertPayment(ctx context.Context, payment *Payment) error
}
