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

type BatchService struct {
	Batches BatchRepository
	Audit   *AuditTrail
	Now     func() time.Time
}

type CreateBatchRequest struct {
	CropType           string
	Variety            string
	Quantity           float64
	Unit               string
	Location           string
	PinCode            string
	HarvestDate        string
	DestinationCountry string
	Tests              []string
}

// Create validates and persists a new batch owned by the submitting
// exporter. Every field except variety is required; nothing is written when
// validation fails.
func (s *BatchService) Create(ctx context.Context, principal domain.Principal, req CreateBatchRequest) (domain.Batch, error) {
	if s == nil || s.Batches == nil {
		return domain.Batch{}, errors.New("batch repository is required")
	}
	if err := validateCreateBatch(req); err != nil {
		return domain.Batch{}, err
	}
	harvest, err := time.Parse("2006-01-02", req.HarvestDate)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("%w: harvest date must be YYYY-MM-DD", domain.ErrValidation)
	}

	now := s.clock()()
	unit := req.Unit
	if unit == "" {
		unit = domain.DefaultUnit
	}
	batch := domain.Batch{
		ID:                 uuid.NewString(),
		BatchNumber:        newBatchNumber(now),
		ExporterID:         principal.Subject,
		ExporterName:       principal.Name,
		CropType:           req.CropType,
		Variety:            req.Variety,
		Quantity:           req.Quantity,
		Unit:               unit,
		Location:           req.Location,
		PinCode:            req.PinCode,
		DestinationCountry: req.DestinationCountry,
		HarvestDate:        harvest,
		Tests:              req.Tests,
		Status:             domain.BatchStatusPending,
		SubmittedAt:        now,
	}
	if err := s.Batches.Create(ctx, batch); err != nil {
		return domain.Batch{}, err
	}
	s.Audit.Record(ctx, domain.AuditEvent{
		EntityType: "batch",
		EntityID:   batch.ID,
		Action:     domain.AuditActionBatchSubmitted,
		ActorRole:  string(principal.Role),
		ActorName:  principal.Name,
		Details: map[string]any{
			"batch_number": batch.BatchNumber,
			"crop_type":    batch.CropType,
			"destination":  batch.DestinationCountry,
		},
	})
	return batch, nil
}

func (s *BatchService) List(ctx context.Context) ([]domain.Batch, error) {
	if s == nil || s.Batches == nil {
		return nil, errors.New("batch repository is required")
	}
	return s.Batches.List(ctx)
}

func (s *BatchService) clock() func() time.Time {
	if s.Now != nil {
		return s.Now
	}
	return time.Now
}

func validateCreateBatch(req CreateBatchRequest) error {
	missing := []string{}
	if strings.TrimSpace(req.CropType) == "" {
		missing = append(missing, "cropType")
	}
	if req.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if strings.TrimSpace(req.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(req.PinCode) == "" {
		missing = append(missing, "pinCode")
	}
	if strings.TrimSpace(req.HarvestDate) == "" {
		missing = append(missing, "harvestDate")
	}
	if strings.TrimSpace(req.DestinationCountry) == "" {
		missing = append(missing, "destinationCountry")
	}
	if len(req.Tests) == 0 {
		missing = append(missing, "tests")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// newBatchNumber derives a human-scannable batch number; uniqueness comes
// from the embedded uuid fragment.
func newBatchNumber(now time.Time) string {
	return fmt.Sprintf("AGB-%d-%s", now.Year(), strings.ToUpper(uuid.NewString()[:8]))
}
