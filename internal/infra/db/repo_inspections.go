package db

import (
	"context"
	"errors"

	"agripass/internal/domain"

	"gorm.io/gorm"
)

type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

func (r *InspectionRepository) Create(ctx context.Context, inspection domain.Inspection) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := InspectionModel{
		ID:               inspection.ID,
		BatchID:          inspection.BatchID,
		InspectorName:    inspection.InspectorName,
		InspectorOrg:     inspection.InspectorOrg,
		Moisture:         inspection.Moisture,
		PesticideResidue: inspection.PesticideResidue,
		HeavyMetals:      inspection.HeavyMetals,
		Aflatoxin:        inspection.Aflatoxin,
		MicrobialLoad:    inspection.MicrobialLoad,
		Organic:          inspection.Organic,
		Grade:            inspection.Grade,
		Notes:            inspection.Notes,
		InspectedAt:      inspection.InspectedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *InspectionRepository) GetByBatchID(ctx context.Context, batchID string) (*domain.Inspection, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model InspectionModel
	err := r.db.WithContext(ctx).First(&model, "batch_id = ?", batchID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Inspection{
		ID:               model.ID,
		BatchID:          model.BatchID,
		InspectorName:    model.InspectorName,
		InspectorOrg:     model.InspectorOrg,
		Moisture:         model.Moisture,
		PesticideResidue: model.PesticideResidue,
		HeavyMetals:      model.HeavyMetals,
		Aflatoxin:        model.Aflatoxin,
		MicrobialLoad:    model.MicrobialLoad,
		Organic:          model.Organic,
		Grade:            model.Grade,
		Notes:            model.Notes,
		InspectedAt:      model.InspectedAt,
	}, nil
}
