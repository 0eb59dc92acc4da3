package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"agripass/internal/domain"

	"github.com/google/uuid"
)

// DefaultAuditPageSize bounds the audit listing.
const DefaultAuditPageSize = 100

// AuditTrail appends audit events for every write and serves the auditor
// listing. Append failures are logged, never propagated: an audit miss must
// not fail the action it describes.
type AuditTrail struct {
	Events AuditRepository
	Logger *slog.Logger
	Now    func() time.Time
}

func (t *AuditTrail) Record(ctx context.Context, event domain.AuditEvent) {
	if t == nil || t.Events == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		now := time.Now
		if t.Now != nil {
			now = t.Now
		}
		event.CreatedAt = now().UTC()
	}
	if event.Details == nil {
		event.Details = map[string]any{}
	}
	if _, err := t.Events.Append(ctx, event); err != nil && t.Logger != nil {
		t.Logger.Error("audit append failed",
			"action", event.Action,
			"entity_type", event.EntityType,
			"entity_id", event.EntityID,
			"error", err,
		)
	}
}

func (t *AuditTrail) Recent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if t == nil || t.Events == nil {
		return nil, errors.New("audit repository is required")
	}
	if limit <= 0 || limit > DefaultAuditPageSize {
		limit = DefaultAuditPageSize
	}
	return t.Events.ListRecent(ctx, limit)
}
