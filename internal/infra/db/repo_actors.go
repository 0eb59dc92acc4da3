package db

import (
	"context"
	"errors"
	"time"

	"agripass/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

// Upsert records the actor on first sight and refreshes identity fields on
// subsequent sessions.
func (r *ActorRepository) Upsert(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	if r.db == nil {
		return domain.Actor{}, errDBUnavailable
	}
	if actor.CreatedAt.IsZero() {
		actor.CreatedAt = time.Now().UTC()
	}
	model := ActorModel{
		ID:           actor.ID,
		Name:         actor.Name,
		Email:        actor.Email,
		Organization: actor.Organization,
		Role:         string(actor.Role),
		CreatedAt:    actor.CreatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "organization", "role"}),
	}).Create(&model).Error
	if err != nil {
		return domain.Actor{}, err
	}
	return actor, nil
}

func (r *ActorRepository) GetByID(ctx context.Context, id string) (*domain.Actor, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model ActorModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Actor{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		Organization: model.Organization,
		Role:         domain.Role(model.Role),
		CreatedAt:    model.CreatedAt,
	}, nil
}
