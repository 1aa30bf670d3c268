package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Service records audit entries. Writes are best effort from the caller's
// perspective; failures are logged, not propagated into payment flows.
type Service interface {
	AuditLog(
		ctx context.Context,
		companyID *snowflake.ID,
		actorType string,
		actorID *string,
		action string,
		targetType string,
		targetID *string,
		metadata map[string]any,
	) error
	List(ctx context.Context, filter ListFilter) ([]*AuditLog, error)
}
