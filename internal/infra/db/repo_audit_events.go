package db

import (
	"context"
	"encoding/json"
	"time"

	"agripass/internal/domain"

	"gorm.io/gorm"
)

type AuditEventRepository struct {
	db *gorm.DB
}

func NewAuditEventRepository(db *gorm.DB) *AuditEventRepository {
	return &AuditEventRepository{db: db}
}

func (r *AuditEventRepository) Append(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	if r.db == nil {
		return domain.AuditEvent{}, errDBUnavailable
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	details, err := json.Marshal(event.Details)
	if err != nil {
		return domain.AuditEvent{}, err
	}
	model := AuditEventModel{
		ID:          event.ID,
		EntityType:  event.EntityType,
		EntityID:    event.EntityID,
		Action:      event.Action,
		ActorRole:   event.ActorRole,
		ActorName:   event.ActorName,
		DetailsJSON: details,
		CreatedAt:   event.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.AuditEvent{}, err
	}
	return event, nil
}

func (r *AuditEventRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []AuditEventModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}
	events := make([]domain.AuditEvent, 0, len(models))
	for _, model := range models {
		var details map[string]any
		if len(model.DetailsJSON) > 0 {
			_ = json.Unmarshal(model.DetailsJSON, &details)
		}
		events = append(events, domain.AuditEvent{
			ID:         model.ID,
			EntityType: model.EntityType,
			EntityID:   model.EntityID,
			Action:     model.Action,
			ActorRole:  model.ActorRole,
			ActorName:  model.ActorName,
			Details:    details,
			CreatedAt:  model.CreatedAt,
		})
	}
	return events, nil
}
