package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agripass/internal/domain"
)

// Warning strings appended to a verification report. Warnings never abort
// the report; they travel with it.
const (
	WarningExpired       = "Certificate has EXPIRED"
	WarningMissingIssuer = "Issuer DID not found"
)

// VerifyCertificate assembles the consolidated verification report for a
// certificate. The operation is read-only and idempotent; the only
// time-dependent output is the derived expiry state, which is always
// recomputed against the clock at call time.
type VerifyCertificate struct {
	Certificates CertificateRepository
	Credentials  CredentialRepository
	Batches      BatchRepository
	Inspections  InspectionRepository
	Actors       ActorRepository
	BaseURL      string
	Now          func() time.Time
}

func (uc *VerifyCertificate) Execute(ctx context.Context, certID string) (domain.VerificationReport, error) {
	if uc == nil || uc.Certificates == nil {
		return domain.VerificationReport{}, errors.New("certificate repository is required")
	}
	if certID == "" {
		return domain.VerificationReport{}, fmt.Errorf("%w: certificate id is required", domain.ErrValidation)
	}
	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}

	cert, err := uc.Certificates.GetByID(ctx, certID)
	if err != nil {
		return domain.VerificationReport{}, err
	}

	vc, err := uc.credential(ctx, cert.ID)
	if err != nil {
		return domain.VerificationReport{}, err
	}
	batch, err := uc.batch(ctx, cert.BatchID)
	if err != nil {
		return domain.VerificationReport{}, err
	}
	var exporter *domain.Actor
	if batch != nil && batch.ExporterID != "" {
		exporter, err = uc.actor(ctx, batch.ExporterID)
		if err != nil {
			return domain.VerificationReport{}, err
		}
	}
	var inspection *domain.Inspection
	if batch != nil {
		inspection, err = uc.inspection(ctx, batch.ID)
		if err != nil {
			return domain.VerificationReport{}, err
		}
	}

	checkedAt := now().UTC()
	expired := cert.ExpiredAt(checkedAt)

	report := domain.VerificationReport{
		Status:        domain.ReportStatusValid,
		CertificateID: cert.ID,
		BatchNumber:   cert.BatchNumber,
		URLs: domain.VerificationURLs{
			ThisEndpoint: fmt.Sprintf("%s/api/verify/%s", uc.BaseURL, cert.ID),
			PublicPage:   fmt.Sprintf("%s/verify/%s", uc.BaseURL, cert.ID),
		},
		IssuedAt:  cert.IssuedAt,
		ExpiresAt: cert.ExpiresAt,
		IsExpired: expired,
		CheckedAt: checkedAt,
		Issuer: domain.IssuerInfo{
			Name: cert.QAAgencyName,
			Type: domain.IssuerType,
		},
		Holder:   domain.HolderInfo{Name: cert.ExporterName},
		Product:  buildProduct(cert, batch),
		Quality:  buildQuality(inspection),
		Warnings: []string{},
	}
	if expired {
		report.Status = domain.ReportStatusExpired
		report.Warnings = append(report.Warnings, WarningExpired)
	}

	if vc != nil {
		if vc.VerifyURL != "" {
			report.URLs.InjiVerify = strPtr(vc.VerifyURL)
		}
		if vc.IssuerDID != "" {
			report.Issuer.DID = strPtr(vc.IssuerDID)
		}
		if vc.SubjectDID != "" {
			report.Holder.DID = strPtr(vc.SubjectDID)
		}
		report.Credential = vc.Credential
	}
	if report.Issuer.DID == nil {
		report.Warnings = append(report.Warnings, WarningMissingIssuer)
	}
	if exporter != nil {
		if exporter.Organization != "" {
			report.Holder.Organization = strPtr(exporter.Organization)
		}
		if exporter.Email != "" {
			report.Holder.Email = strPtr(exporter.Email)
		}
	}
	return report, nil
}

func buildProduct(cert *domain.Certificate, batch *domain.Batch) domain.ProductInfo {
	product := domain.ProductInfo{
		Type:        cert.ProductType,
		BatchNumber: cert.BatchNumber,
		Unit:        domain.DefaultUnit,
	}
	if batch == nil {
		return product
	}
	if batch.Location != "" {
		product.Origin = strPtr(batch.Location)
	}
	if batch.DestinationCountry != "" {
		product.Destination = strPtr(batch.DestinationCountry)
	}
	if batch.Quantity > 0 {
		quantity := batch.Quantity
		product.Quantity = &quantity
	}
	if batch.Unit != "" {
		product.Unit = batch.Unit
	}
	if !batch.HarvestDate.IsZero() {
		harvest := batch.HarvestDate.Format("2006-01-02")
		product.HarvestDate = &harvest
	}
	return product
}

func buildQuality(inspection *domain.Inspection) *domain.QualityMetrics {
	if inspection == nil {
		return nil
	}
	quality := &domain.QualityMetrics{
		Moisture:         inspection.Moisture,
		PesticideResidue: inspection.PesticideResidue,
		Organic:          inspection.Organic,
		Grade:            inspection.Grade,
		InspectionDate:   inspection.InspectedAt,
		Notes:            inspection.Notes,
	}
	if inspection.InspectorName != "" {
		quality.Inspector.Name = strPtr(inspection.InspectorName)
	}
	if inspection.InspectorOrg != "" {
		quality.Inspector.Organization = strPtr(inspection.InspectorOrg)
	}
	return quality
}

func (uc *VerifyCertificate) credential(ctx context.Context, certID string) (*domain.VerifiableCredential, error) {
	if uc.Credentials == nil {
		return nil, nil
	}
	vc, err := uc.Credentials.GetByCertificateID(ctx, certID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return vc, err
}

func (uc *VerifyCertificate) batch(ctx context.Context, batchID string) (*domain.Batch, error) {
	if uc.Batches == nil || batchID == "" {
		return nil, nil
	}
	batch, err := uc.Batches.GetByID(ctx, batchID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return batch, err
}

func (uc *VerifyCertificate) actor(ctx context.Context, id string) (*domain.Actor, error) {
	if uc.Actors == nil {
		return nil, nil
	}
	actor, err := uc.Actors.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return actor, err
}

func (uc *VerifyCertificate) inspection(ctx context.Context, batchID string) (*domain.Inspection, error) {
	if uc.Inspections == nil {
		return nil, nil
	}
	inspection, err := uc.Inspections.GetByBatchID(ctx, batchID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return inspection, err
}

func strPtr(s string) *string {
	return &s
}
