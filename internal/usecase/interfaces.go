package usecase

import (
	"context"

	"agripass/internal/domain"
)

type BatchRepository interface {
	Create(ctx context.Context, batch domain.Batch) error
	GetByID(ctx context.Context, id string) (*domain.Batch, error)
	List(ctx context.Context) ([]domain.Batch, error)
	ListByStatus(ctx context.Context, statuses []domain.BatchStatus) ([]domain.Batch, error)
	ListByExporter(ctx context.Context, exporterID string) ([]domain.Batch, error)
	// TransitionStatus moves a batch from any of the given statuses to the
	// target status. It returns domain.ErrConflict when the batch is no
	// longer in one of the expected statuses.
	TransitionStatus(ctx context.Context, id string, from []domain.BatchStatus, to domain.BatchStatus) error
}

type InspectionRepository interface {
	Create(ctx context.Context, inspection domain.Inspection) error
	GetByBatchID(ctx context.Context, batchID string) (*domain.Inspection, error)
}

type CertificateRepository interface {
	Create(ctx context.Context, cert domain.Certificate) error
	GetByID(ctx context.Context, id string) (*domain.Certificate, error)
	ListByExporter(ctx context.Context, exporterName string) ([]domain.Certificate, error)
}

type CredentialRepository interface {
	Create(ctx context.Context, vc domain.VerifiableCredential) error
	GetByCertificateID(ctx context.Context, certificateID string) (*domain.VerifiableCredential, error)
}

type ActorRepository interface {
	Upsert(ctx context.Context, actor domain.Actor) (domain.Actor, error)
	GetByID(ctx context.Context, id string) (*domain.Actor, error)
}

type AuditRepository interface {
	Append(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error)
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}
