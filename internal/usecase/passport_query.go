package usecase

import (
	"context"
	"errors"

	"agripass/internal/domain"
)

// Passport is the credential summary row shown to exporters and importers.
type Passport struct {
	ID                 string   `json:"id"`
	CropType           string   `json:"cropType"`
	Quantity           float64  `json:"quantity"`
	Unit               string   `json:"unit"`
	HarvestDate        string   `json:"harvestDate"`
	DestinationCountry string   `json:"destinationCountry"`
	Status             string   `json:"status"`
	Tests              []string `json:"tests"`
}

type PassportQuery struct {
	Batches BatchRepository
}

// List returns the passport rows visible to the caller: exporters see their
// own batches, importers and auditors see everything certified or approved.
func (q *PassportQuery) List(ctx context.Context, principal domain.Principal) ([]Passport, error) {
	if q == nil || q.Batches == nil {
		return nil, errors.New("batch repository is required")
	}
	var batches []domain.Batch
	var err error
	if principal.Role == domain.RoleExporter {
		batches, err = q.Batches.ListByExporter(ctx, principal.Subject)
	} else {
		batches, err = q.Batches.ListByStatus(ctx, []domain.BatchStatus{domain.BatchStatusApproved, domain.BatchStatusCertified})
	}
	if err != nil {
		return nil, err
	}
	passports := make([]Passport, 0, len(batches))
	for _, batch := range batches {
		unit := batch.Unit
		if unit == "" {
			unit = domain.DefaultUnit
		}
		harvest := ""
		if !batch.HarvestDate.IsZero() {
			harvest = batch.HarvestDate.Format("2006-01-02")
		}
		passports = append(passports, Passport{
			ID:                 batch.ID,
			CropType:           batch.CropType,
			Quantity:           batch.Quantity,
			Unit:               unit,
			HarvestDate:        harvest,
			DestinationCountry: batch.DestinationCountry,
			Status:             string(batch.Status),
			Tests:              batch.Tests,
		})
	}
	return passports, nil
}
