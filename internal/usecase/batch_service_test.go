package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"agripass/internal/domain"
)

func exporterPrincipal() domain.Principal {
	return domain.Principal{
		Subject: "actor-1",
		Name:    "Green Fields Ltd",
		Role:    domain.RoleExporter,
	}
}

func validCreateRequest() CreateBatchRequest {
	return CreateBatchRequest{
		CropType:           "Turmeric",
		Quantity:           500,
		Location:           "Erode, Tamil Nadu",
		PinCode:            "638001",
		HarvestDate:        "2026-01-20",
		DestinationCountry: "Germany",
		Tests:              []string{domain.TestMoisture, domain.TestPesticide},
	}
}

func TestBatchCreate(t *testing.T) {
	batches := newStubBatchRepo()
	audits := &stubAuditRepo{}
	svc := &BatchService{
		Batches: batches,
		Audit:   &AuditTrail{Events: audits},
		Now:     func() time.Time { return time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC) },
	}

	batch, err := svc.Create(context.Background(), exporterPrincipal(), validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if batch.Status != domain.BatchStatusPending {
		t.Fatalf("expected PENDING, got %s", batch.Status)
	}
	if !strings.HasPrefix(batch.BatchNumber, "AGB-2026-") {
		t.Fatalf("unexpected batch number: %s", batch.BatchNumber)
	}
	if batch.Unit != domain.DefaultUnit {
		t.Fatalf("expected default unit, got %s", batch.Unit)
	}
	if batch.ExporterID != "actor-1" {
		t.Fatalf("expected owner actor-1, got %s", batch.ExporterID)
	}
	if len(batches.created) != 1 {
		t.Fatalf("expected one persisted batch")
	}
	if len(audits.events) != 1 || audits.events[0].Action != domain.AuditActionBatchSubmitted {
		t.Fatalf("expected batch submission audit event, got %+v", audits.events)
	}
}

func TestBatchCreate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateBatchRequest)
	}{
		{"crop type", func(r *CreateBatchRequest) { r.CropType = "" }},
		{"quantity", func(r *CreateBatchRequest) { r.Quantity = 0 }},
		{"location", func(r *CreateBatchRequest) { r.Location = " " }},
		{"pin code", func(r *CreateBatchRequest) { r.PinCode = "" }},
		{"harvest date", func(r *CreateBatchRequest) { r.HarvestDate = "" }},
		{"destination", func(r *CreateBatchRequest) { r.DestinationCountry = "" }},
		{"tests", func(r *CreateBatchRequest) { r.Tests = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			batches := newStubBatchRepo()
			svc := &BatchService{Batches: batches}
			req := validCreateRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), exporterPrincipal(), req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(batches.created) != 0 {
				t.Fatalf("expected nothing persisted")
			}
		})
	}
}

func TestBatchCreate_VarietyOptional(t *testing.T) {
	svc := &BatchService{Batches: newStubBatchRepo()}
	req := validCreateRequest()
	req.Variety = ""

	if _, err := svc.Create(context.Background(), exporterPrincipal(), req); err != nil {
		t.Fatalf("create without variety: %v", err)
	}
}

func TestBatchCreate_BadHarvestDate(t *testing.T) {
	svc := &BatchService{Batches: newStubBatchRepo()}
	req := validCreateRequest()
	req.HarvestDate = "20/01/2026"

	_, err := svc.Create(context.Background(), exporterPrincipal(), req)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
