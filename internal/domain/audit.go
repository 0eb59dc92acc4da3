package domain

import "time"

// Audit actions recorded against entities.
const (
	AuditActionBatchSubmitted     = "BATCH_SUBMITTED"
	AuditActionInspectionRecorded = "INSPECTION_RECORDED"
	AuditActionCertificateIssued  = "CERTIFICATE_ISSUED"
	AuditActionSessionOpened      = "SESSION_OPENED"
)

type AuditEvent struct {
	ID         string
	EntityType string
	EntityID   string
	Action     string
	ActorRole  string
	ActorName  string
	Details    map[string]any
	CreatedAt  time.Time
}
