package db

import (
	"context"
	"errors"
	"fmt"

	"agripass/internal/domain"

	"gorm.io/gorm"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) Create(ctx context.Context, batch domain.Batch) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model, err := batchToModel(batch)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *BatchRepository) GetByID(ctx context.Context, id string) (*domain.Batch, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model BatchModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	batch := batchFromModel(model)
	return &batch, nil
}

func (r *BatchRepository) List(ctx context.Context) ([]domain.Batch, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []BatchModel
	err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return batchesFromModels(models), nil
}

func (r *BatchRepository) ListByStatus(ctx context.Context, statuses []domain.BatchStatus) ([]domain.Batch, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	var models []BatchModel
	err := r.db.WithContext(ctx).Where("status IN ?", values).Order("submitted_at ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return batchesFromModels(models), nil
}

func (r *BatchRepository) ListByExporter(ctx context.Context, exporterID string) ([]domain.Batch, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []BatchModel
	err := r.db.WithContext(ctx).Where("exporter_id = ?", exporterID).Order("submitted_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return batchesFromModels(models), nil
}

// TransitionStatus performs a conditional update so that two concurrent
// submissions cannot both move the same batch; the loser sees ErrConflict.
func (r *BatchRepository) TransitionStatus(ctx context.Context, id string, from []domain.BatchStatus, to domain.BatchStatus) error {
	if r.db == nil {
		return errDBUnavailable
	}
	values := make([]string, 0, len(from))
	for _, status := range from {
		values = append(values, string(status))
	}
	result := r.db.WithContext(ctx).
		Model(&BatchModel{}).
		Where("id = ? AND status IN ?", id, values).
		Update("status", string(to))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: batch %s not in expected status", domain.ErrConflict, id)
	}
	return nil
}

func batchToModel(batch domain.Batch) (BatchModel, error) {
	tests, err := marshalStrings(batch.Tests)
	if err != nil {
		return BatchModel{}, err
	}
	return BatchModel{
		ID:                 batch.ID,
		BatchNumber:        batch.BatchNumber,
		ExporterID:         batch.ExporterID,
		ExporterName:       batch.ExporterName,
		CropType:           batch.CropType,
		Variety:            batch.Variety,
		Quantity:           batch.Quantity,
		Unit:               batch.Unit,
		Location:           batch.Location,
		PinCode:            batch.PinCode,
		DestinationCountry: batch.DestinationCountry,
		HarvestDate:        batch.HarvestDate,
		TestsJSON:          tests,
		Status:             string(batch.Status),
		SubmittedAt:        batch.SubmittedAt,
	}, nil
}

func batchFromModel(model BatchModel) domain.Batch {
	return domain.Batch{
		ID:                 model.ID,
		BatchNumber:        model.BatchNumber,
		ExporterID:         model.ExporterID,
		ExporterName:       model.ExporterName,
		CropType:           model.CropType,
		Variety:            model.Variety,
		Quantity:           model.Quantity,
		Unit:               model.Unit,
		Location:           model.Location,
		PinCode:            model.PinCode,
		DestinationCountry: model.DestinationCountry,
		HarvestDate:        model.HarvestDate,
		Tests:              unmarshalStrings(model.TestsJSON),
		Status:             domain.BatchStatus(model.Status),
		SubmittedAt:        model.SubmittedAt,
	}
}

func batchesFromModels(models []BatchModel) []domain.Batch {
	batches := make([]domain.Batch, 0, len(models))
	for _, model := range models {
		batches = append(batches, batchFromModel(model))
	}
	return batches
}
