package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agripass/internal/domain"

	"github.com/google/uuid"
)

type InspectionService struct {
	Batches     BatchRepository
	Inspections InspectionRepository
	Audit       *AuditTrail
	Now         func() time.Time
}

type SubmitInspectionRequest struct {
	BatchID       string
	InspectorName string
	InspectorOrg  string
	Moisture      *float64
	Pesticide     *float64
	HeavyMetals   *float64
	Aflatoxin     *float64
	MicrobialLoad *string
	Organic       bool
	Grade         string
	Notes         string
}

// Pending lists the batches still awaiting inspection results.
func (s *InspectionService) Pending(ctx context.Context) ([]domain.Batch, error) {
	if s == nil || s.Batches == nil {
		return nil, errors.New("batch repository is required")
	}
	return s.Batches.ListByStatus(ctx, domain.PendingStatuses)
}

// Submit validates measured values against the tests requested on the batch,
// persists the inspection and transitions the batch out of the pending set.
// The required metric set is exactly the batch's requested tests; organic
// certification is a flag, not a measured value, so it is never "missing".
func (s *InspectionService) Submit(ctx context.Context, principal domain.Principal, req SubmitInspectionRequest) (domain.Inspection, error) {
	if s == nil || s.Batches == nil || s.Inspections == nil {
		return domain.Inspection{}, errors.New("batch and inspection repositories are required")
	}
	if strings.TrimSpace(req.BatchID) == "" {
		return domain.Inspection{}, fmt.Errorf("%w: batchId is required", domain.ErrValidation)
	}
	if strings.TrimSpace(req.InspectorName) == "" {
		return domain.Inspection{}, fmt.Errorf("%w: inspectorName is required", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Grade) == "" {
		return domain.Inspection{}, fmt.Errorf("%w: grade is required", domain.ErrValidation)
	}

	batch, err := s.Batches.GetByID(ctx, req.BatchID)
	if err != nil {
		return domain.Inspection{}, err
	}
	if !batch.Status.AwaitingInspection() {
		return domain.Inspection{}, fmt.Errorf("%w: batch %s is not awaiting inspection", domain.ErrConflict, batch.BatchNumber)
	}
	if err := requireRequestedMetrics(batch.Tests, req); err != nil {
		return domain.Inspection{}, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	inspection := domain.Inspection{
		ID:               uuid.NewString(),
		BatchID:          batch.ID,
		InspectorName:    req.InspectorName,
		InspectorOrg:     req.InspectorOrg,
		Moisture:         req.Moisture,
		PesticideResidue: req.Pesticide,
		HeavyMetals:      req.HeavyMetals,
		Aflatoxin:        req.Aflatoxin,
		MicrobialLoad:    req.MicrobialLoad,
		Organic:          req.Organic,
		Grade:            req.Grade,
		Notes:            req.Notes,
		InspectedAt:      now().UTC(),
	}
	if err := s.Inspections.Create(ctx, inspection); err != nil {
		return domain.Inspection{}, err
	}

	target := domain.BatchStatusApproved
	if strings.EqualFold(req.Grade, "C") {
		target = domain.BatchStatusRejected
	}
	if err := s.Batches.TransitionStatus(ctx, batch.ID, domain.PendingStatuses, target); err != nil {
		return domain.Inspection{}, err
	}

	s.Audit.Record(ctx, domain.AuditEvent{
		EntityType: "inspection",
		EntityID:   inspection.ID,
		Action:     domain.AuditActionInspectionRecorded,
		ActorRole:  string(principal.Role),
		ActorName:  req.InspectorName,
		Details: map[string]any{
			"batch_number": batch.BatchNumber,
			"grade":        inspection.Grade,
			"status":       string(target),
		},
	})
	return inspection, nil
}

// requireRequestedMetrics rejects a submission missing a value for any test
// the batch requested.
func requireRequestedMetrics(tests []string, req SubmitInspectionRequest) error {
	missing := []string{}
	for _, test := range tests {
		switch test {
		case domain.TestMoisture:
			if req.Moisture == nil {
				missing = append(missing, "moisture")
			}
		case domain.TestPesticide:
			if req.Pesticide == nil {
				missing = append(missing, "pesticide")
			}
		case domain.TestHeavyMetals:
			if req.HeavyMetals == nil {
				missing = append(missing, "heavyMetals")
			}
		case domain.TestAflatoxin:
			if req.Aflatoxin == nil {
				missing = append(missing, "aflatoxin")
			}
		case domain.TestMicrobialLoad:
			if req.MicrobialLoad == nil || strings.TrimSpace(*req.MicrobialLoad) == "" {
				missing = append(missing, "microbialLoad")
			}
		case domain.TestOrganic:
			// boolean flag; absence is a valid value
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required test results: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
