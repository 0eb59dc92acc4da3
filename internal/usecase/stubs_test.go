package usecase

import (
	"context"

	"agripass/internal/domain"
)

type stubBatchRepo struct {
	batches     map[string]*domain.Batch
	created     []domain.Batch
	transitions []string
	err         error
}

func newStubBatchRepo(batches ...domain.Batch) *stubBatchRepo {
	repo := &stubBatchRepo{batches: map[string]*domain.Batch{}}
	for i := range batches {
		b := batches[i]
		repo.batches[b.ID] = &b
	}
	return repo
}

func (r *stubBatchRepo) Create(ctx context.Context, batch domain.Batch) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, batch)
	r.batches[batch.ID] = &batch
	return nil
}

func (r *stubBatchRepo) GetByID(ctx context.Context, id string) (*domain.Batch, error) {
	if r.err != nil {
		return nil, r.err
	}
	batch, ok := r.batches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

func (r *stubBatchRepo) List(ctx context.Context) ([]domain.Batch, error) {
	out := []domain.Batch{}
	for _, batch := range r.batches {
		out = append(out, *batch)
	}
	return out, r.err
}

func (r *stubBatchRepo) ListByStatus(ctx context.Context, statuses []domain.BatchStatus) ([]domain.Batch, error) {
	out := []domain.Batch{}
	for _, batch := range r.batches {
		for _, status := range statuses {
			if batch.Status == status {
				out = append(out, *batch)
			}
		}
	}
	return out, r.err
}

func (r *stubBatchRepo) ListByExporter(ctx context.Context, exporterID string) ([]domain.Batch, error) {
	out := []domain.Batch{}
	for _, batch := range r.batches {
		if batch.ExporterID == exporterID {
			out = append(out, *batch)
		}
	}
	return out, r.err
}

func (r *stubBatchRepo) TransitionStatus(ctx context.Context, id string, from []domain.BatchStatus, to domain.BatchStatus) error {
	batch, ok := r.batches[id]
	if !ok {
		return domain.ErrNotFound
	}
	for _, status := range from {
		if batch.Status == status {
			batch.Status = to
			r.transitions = append(r.transitions, id+":"+string(to))
			return nil
		}
	}
	return domain.ErrConflict
}

type stubInspectionRepo struct {
	byBatch map[string]*domain.Inspection
	created []domain.Inspection
	err     error
}

func newStubInspectionRepo(inspections ...domain.Inspection) *stubInspectionRepo {
	repo := &stubInspectionRepo{byBatch: map[string]*domain.Inspection{}}
	for i := range inspections {
		ins := inspections[i]
		repo.byBatch[ins.BatchID] = &ins
	}
	return repo
}

func (r *stubInspectionRepo) Create(ctx context.Context, inspection domain.Inspection) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, inspection)
	r.byBatch[inspection.BatchID] = &inspection
	return nil
}

func (r *stubInspectionRepo) GetByBatchID(ctx context.Context, batchID string) (*domain.Inspection, error) {
	if r.err != nil {
		return nil, r.err
	}
	inspection, ok := r.byBatch[batchID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return inspection, nil
}

type stubCertificateRepo struct {
	certs   map[string]*domain.Certificate
	created []domain.Certificate
	err     error
}

func newStubCertificateRepo(certs ...domain.Certificate) *stubCertificateRepo {
	repo := &stubCertificateRepo{certs: map[string]*domain.Certificate{}}
	for i := range certs {
		c := certs[i]
		repo.certs[c.ID] = &c
	}
	return repo
}

func (r *stubCertificateRepo) Create(ctx context.Context, cert domain.Certificate) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, cert)
	r.certs[cert.ID] = &cert
	return nil
}

func (r *stubCertificateRepo) GetByID(ctx context.Context, id string) (*domain.Certificate, error) {
	if r.err != nil {
		return nil, r.err
	}
	cert, ok := r.certs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cert, nil
}

func (r *stubCertificateRepo) ListByExporter(ctx context.Context, exporterName string) ([]domain.Certificate, error) {
	out := []domain.Certificate{}
	for _, cert := range r.certs {
		if cert.ExporterName == exporterName {
			out = append(out, *cert)
		}
	}
	return out, r.err
}

type stubCredentialRepo struct {
	byCert  map[string]*domain.VerifiableCredential
	created []domain.VerifiableCredential
	err     error
}

func newStubCredentialRepo(vcs ...domain.VerifiableCredential) *stubCredentialRepo {
	repo := &stubCredentialRepo{byCert: map[string]*domain.VerifiableCredential{}}
	for i := range vcs {
		vc := vcs[i]
		repo.byCert[vc.CertificateID] = &vc
	}
	return repo
}

func (r *stubCredentialRepo) Create(ctx context.Context, vc domain.VerifiableCredential) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, vc)
	r.byCert[vc.CertificateID] = &vc
	return nil
}

func (r *stubCredentialRepo) GetByCertificateID(ctx context.Context, certificateID string) (*domain.VerifiableCredential, error) {
	if r.err != nil {
		return nil, r.err
	}
	vc, ok := r.byCert[certificateID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return vc, nil
}

type stubActorRepo struct {
	actors map[string]*domain.Actor
}

func newStubActorRepo(actors ...domain.Actor) *stubActorRepo {
	repo := &stubActorRepo{actors: map[string]*domain.Actor{}}
	for i := range actors {
		a := actors[i]
		repo.actors[a.ID] = &a
	}
	return repo
}

func (r *stubActorRepo) Upsert(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	r.actors[actor.ID] = &actor
	return actor, nil
}

func (r *stubActorRepo) GetByID(ctx context.Context, id string) (*domain.Actor, error) {
	actor, ok := r.actors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return actor, nil
}

type stubAuditRepo struct {
	events []domain.AuditEvent
	err    error
}

func (r *stubAuditRepo) Append(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error) {
	if r.err != nil {
		return domain.AuditEvent{}, r.err
	}
	r.events = append(r.events, event)
	return event, nil
}

func (r *stubAuditRepo) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	if limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]domain.AuditEvent, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}
