package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"agripass/internal/domain"
)

var verifyNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newVerifyFixture() (*VerifyCertificate, domain.Certificate, domain.Batch) {
	batch := domain.Batch{
		ID:                 "batch-1",
		BatchNumber:        "AGB-2026-AB12CD34",
		ExporterID:         "actor-1",
		ExporterName:       "Green Fields Ltd",
		CropType:           "Basmati Rice",
		Quantity:           1200,
		Unit:               "kg",
		Location:           "Karnal, Haryana",
		DestinationCountry: "Germany",
		HarvestDate:        time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:             domain.BatchStatusCertified,
	}
	cert := domain.Certificate{
		ID:           "cert-1",
		BatchID:      batch.ID,
		BatchNumber:  batch.BatchNumber,
		ProductType:  batch.CropType,
		ExporterName: batch.ExporterName,
		QAAgencyName: "AgriQA Labs",
		IssuedAt:     verifyNow.AddDate(0, -1, 0),
		ExpiresAt:    verifyNow.AddDate(0, 5, 0),
	}
	uc := &VerifyCertificate{
		Certificates: newStubCertificateRepo(cert),
		Credentials:  newStubCredentialRepo(),
		Batches:      newStubBatchRepo(batch),
		Inspections:  newStubInspectionRepo(),
		Actors:       newStubActorRepo(),
		BaseURL:      "https://agripass.example",
		Now:          func() time.Time { return verifyNow },
	}
	return uc, cert, batch
}

func TestVerifyCertificate_Valid(t *testing.T) {
	uc, cert, _ := newVerifyFixture()
	moisture := 11.5
	uc.Inspections = newStubInspectionRepo(domain.Inspection{
		ID:            "ins-1",
		BatchID:       cert.BatchID,
		InspectorName: "R. Mehta",
		Moisture:      &moisture,
		Organic:       true,
		Grade:         "A",
		InspectedAt:   verifyNow.AddDate(0, -1, -2),
	})
	uc.Credentials = newStubCredentialRepo(domain.VerifiableCredential{
		ID:            "vc-1",
		CertificateID: cert.ID,
		IssuerDID:     "did:web:agriqa-labs",
		SubjectDID:    "did:web:green-fields-ltd",
		VerifyURL:     "https://inji.example/verify/cert-1",
		Credential:    json.RawMessage(`{"type":["VerifiableCredential"]}`),
	})
	uc.Actors = newStubActorRepo(domain.Actor{
		ID:           "actor-1",
		Name:         "Green Fields Ltd",
		Email:        "ops@greenfields.example",
		Organization: "Green Fields Export Co",
		Role:         domain.RoleExporter,
	})

	report, err := uc.Execute(context.Background(), cert.ID)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if report.Status != domain.ReportStatusValid {
		t.Fatalf("expected VALID, got %s", report.Status)
	}
	if report.IsExpired {
		t.Fatalf("expected is_expired false")
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", report.Warnings)
	}
	if report.URLs.InjiVerify == nil || *report.URLs.InjiVerify != "https://inji.example/verify/cert-1" {
		t.Fatalf("unexpected inji verify url: %v", report.URLs.InjiVerify)
	}
	if report.URLs.ThisEndpoint != "https://agripass.example/api/verify/cert-1" {
		t.Fatalf("unexpected endpoint url: %s", report.URLs.ThisEndpoint)
	}
	if report.Issuer.DID == nil || *report.Issuer.DID != "did:web:agriqa-labs" {
		t.Fatalf("unexpected issuer did: %v", report.Issuer.DID)
	}
	if report.Issuer.Type != domain.IssuerType {
		t.Fatalf("unexpected issuer type: %s", report.Issuer.Type)
	}
	if report.Holder.Organization == nil || *report.Holder.Organization != "Green Fields Export Co" {
		t.Fatalf("unexpected holder organization: %v", report.Holder.Organization)
	}
	if report.Quality == nil {
		t.Fatalf("expected quality metrics")
	}
	if report.Quality.Grade != "A" || !report.Quality.Organic {
		t.Fatalf("unexpected quality metrics: %+v", report.Quality)
	}
	if report.Product.Unit != "kg" {
		t.Fatalf("unexpected unit: %s", report.Product.Unit)
	}
	if report.Product.HarvestDate == nil || *report.Product.HarvestDate != "2026-01-10" {
		t.Fatalf("unexpected harvest date: %v", report.Product.HarvestDate)
	}
	if report.CheckedAt != verifyNow {
		t.Fatalf("unexpected checked_at: %v", report.CheckedAt)
	}
}

func TestVerifyCertificate_Expired(t *testing.T) {
	uc, cert, _ := newVerifyFixture()
	cert.ExpiresAt = verifyNow.AddDate(0, -1, 0)
	uc.Certificates = newStubCertificateRepo(cert)
	uc.Credentials = newStubCredentialRepo(domain.VerifiableCredential{
		CertificateID: cert.ID,
		IssuerDID:     "did:web:agriqa-labs",
	})

	report, err := uc.Execute(context.Background(), cert.ID)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if report.Status != domain.ReportStatusExpired {
		t.Fatalf("expected EXPIRED, got %s", report.Status)
	}
	if !report.IsExpired {
		t.Fatalf("expected is_expired true")
	}
	found := false
	for _, warning := range report.Warnings {
		if warning == WarningExpired {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected expiry warning, got %v", report.Warnings)
	}
}

func TestVerifyCertificate_MissingCredential(t *testing.T) {
	uc, cert, _ := newVerifyFixture()

	report, err := uc.Execute(context.Background(), cert.ID)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if report.URLs.InjiVerify != nil {
		t.Fatalf("expected null inji verify url")
	}
	if report.Issuer.DID != nil || report.Holder.DID != nil {
		t.Fatalf("expected null DIDs")
	}
	if report.Credential != nil {
		t.Fatalf("expected null credential data")
	}
	found := false
	for _, warning := range report.Warnings {
		if warning == WarningMissingIssuer {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected missing issuer warning, got %v", report.Warnings)
	}
}

func TestVerifyCertificate_MissingInspectionAndBatch(t *testing.T) {
	uc, cert, _ := newVerifyFixture()
	uc.Batches = newStubBatchRepo()
	uc.Inspections = newStubInspectionRepo()

	report, err := uc.Execute(context.Background(), cert.ID)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if report.Quality != nil {
		t.Fatalf("expected null quality metrics")
	}
	if report.Product.Origin != nil || report.Product.Quantity != nil {
		t.Fatalf("expected null batch-derived product fields")
	}
	if report.Product.Unit != domain.DefaultUnit {
		t.Fatalf("expected default unit, got %s", report.Product.Unit)
	}
}

func TestVerifyCertificate_NotFound(t *testing.T) {
	uc, _, _ := newVerifyFixture()

	_, err := uc.Execute(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVerifyCertificate_TimeDependentStatus(t *testing.T) {
	uc, cert, _ := newVerifyFixture()

	report, err := uc.Execute(context.Background(), cert.ID)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if report.Status != domain.ReportStatusValid {
		t.Fatalf("expected VALID before expiry, got %s", report.Status)
	}

	uc.Now = func() time.Time { return cert.ExpiresAt.Add(time.Second) }
	report, err = uc.Execute(context.Background(), cert.ID)
	if err != nil {
		t.Fatalf("execute after expiry: %v", err)
	}
	if report.Status != domain.ReportStatusExpired {
		t.Fatalf("expected EXPIRED after expiry, got %s", report.Status)
	}
}
