package db

import (
	"context"
	"errors"

	"agripass/internal/domain"

	"gorm.io/gorm"
)

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(ctx context.Context, vc domain.VerifiableCredential) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := CredentialModel{
		ID:             vc.ID,
		CertificateID:  vc.CertificateID,
		IssuerDID:      vc.IssuerDID,
		SubjectDID:     vc.SubjectDID,
		VerifyURL:      vc.VerifyURL,
		CredentialJSON: vc.Credential,
		CreatedAt:      vc.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *CredentialRepository) GetByCertificateID(ctx context.Context, certificateID string) (*domain.VerifiableCredential, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model CredentialModel
	err := r.db.WithContext(ctx).First(&model, "certificate_id = ?", certificateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.VerifiableCredential{
		ID:            model.ID,
		CertificateID: model.CertificateID,
		IssuerDID:     model.IssuerDID,
		SubjectDID:    model.SubjectDID,
		VerifyURL:     model.VerifyURL,
		Credential:    model.CredentialJSON,
		CreatedAt:     model.CreatedAt,
	}, nil
}
