package db

import (
	"context"
	"errors"

	"agripass/internal/domain"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(ctx context.Context, cert domain.Certificate) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := certToModel(cert)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *CertificateRepository) GetByID(ctx context.Context, id string) (*domain.Certificate, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model CertificateModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	cert := certFromModel(model)
	return &cert, nil
}

func (r *CertificateRepository) ListByExporter(ctx context.Context, exporterName string) ([]domain.Certificate, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []CertificateModel
	err := r.db.WithContext(ctx).Where("exporter_name = ?", exporterName).Order("issued_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	certs := make([]domain.Certificate, 0, len(models))
	for _, model := range models {
		certs = append(certs, certFromModel(model))
	}
	return certs, nil
}

func certToModel(cert domain.Certificate) CertificateModel {
	return CertificateModel{
		ID:           cert.ID,
		BatchID:      cert.BatchID,
		BatchNumber:  cert.BatchNumber,
		ProductType:  cert.ProductType,
		ExporterName: cert.ExporterName,
		QAAgencyName: cert.QAAgencyName,
		IssuedAt:     cert.IssuedAt,
		ExpiresAt:    cert.ExpiresAt,
	}
}

func certFromModel(model CertificateModel) domain.Certificate {
	return domain.Certificate{
		ID:           model.ID,
		BatchID:      model.BatchID,
		BatchNumber:  model.BatchNumber,
		ProductType:  model.ProductType,
		ExporterName: model.ExporterName,
		QAAgencyName: model.QAAgencyName,
		IssuedAt:     model.IssuedAt,
		ExpiresAt:    model.ExpiresAt,
	}
}
