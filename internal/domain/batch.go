package domain

import "time"

type BatchStatus string

const (
	BatchStatusPending    BatchStatus = "PENDING"
	BatchStatusInProgress BatchStatus = "IN_PROGRESS"
	BatchStatusApproved   BatchStatus = "APPROVED"
	BatchStatusRejected   BatchStatus = "REJECTED"
	BatchStatusCertified  BatchStatus = "CERTIFIED"
)

// PendingStatuses are the statuses in which a batch is still waiting on an
// inspection result.
var PendingStatuses = []BatchStatus{BatchStatusPending, BatchStatusInProgress}

func (s BatchStatus) AwaitingInspection() bool {
	return s == BatchStatusPending || s == BatchStatusInProgress
}

// DefaultUnit is the quantity unit assumed when a batch carries none.
const DefaultUnit = "kg"

type Batch struct {
	ID                 string
	BatchNumber        string
	ExporterID         string
	ExporterName       string
	CropType           string
	Variety            string
	Quantity           float64
	Unit               string
	Location           string
	PinCode            string
	DestinationCountry string
	HarvestDate        time.Time
	Tests              []string
	Status             BatchStatus
	SubmittedAt        time.Time
}
