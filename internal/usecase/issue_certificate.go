package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"agripass/internal/domain"

	"github.com/google/uuid"
)

// CertificateIssuer turns an approved batch into a time-bounded certificate
// with an attached verifiable credential and marks the batch CERTIFIED.
type CertificateIssuer struct {
	Batches      BatchRepository
	Certificates CertificateRepository
	Credentials  CredentialRepository
	Audit        *AuditTrail
	BaseURL      string
	Validity     time.Duration
	Now          func() time.Time
}

func (s *CertificateIssuer) Issue(ctx context.Context, principal domain.Principal, batchID string) (domain.Certificate, error) {
	if s == nil || s.Batches == nil || s.Certificates == nil {
		return domain.Certificate{}, errors.New("batch and certificate repositories are required")
	}
	if strings.TrimSpace(batchID) == "" {
		return domain.Certificate{}, fmt.Errorf("%w: batchId is required", domain.ErrValidation)
	}
	batch, err := s.Batches.GetByID(ctx, batchID)
	if err != nil {
		return domain.Certificate{}, err
	}
	if batch.Status != domain.BatchStatusApproved {
		return domain.Certificate{}, fmt.Errorf("%w: batch %s is not approved", domain.ErrConflict, batch.BatchNumber)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	issuedAt := now().UTC()
	validity := s.Validity
	if validity <= 0 {
		validity = 180 * 24 * time.Hour
	}
	cert := domain.Certificate{
		ID:           uuid.NewString(),
		BatchID:      batch.ID,
		BatchNumber:  batch.BatchNumber,
		ProductType:  batch.CropType,
		ExporterName: batch.ExporterName,
		QAAgencyName: principal.Organization,
		IssuedAt:     issuedAt,
		ExpiresAt:    issuedAt.Add(validity),
	}
	if cert.QAAgencyName == "" {
		cert.QAAgencyName = principal.Name
	}
	if err := s.Certificates.Create(ctx, cert); err != nil {
		return domain.Certificate{}, err
	}

	if s.Credentials != nil {
		vc, err := s.buildCredential(cert, batch, issuedAt)
		if err != nil {
			return domain.Certificate{}, err
		}
		if err := s.Credentials.Create(ctx, vc); err != nil {
			return domain.Certificate{}, err
		}
	}

	if err := s.Batches.TransitionStatus(ctx, batch.ID, []domain.BatchStatus{domain.BatchStatusApproved}, domain.BatchStatusCertified); err != nil {
		return domain.Certificate{}, err
	}

	s.Audit.Record(ctx, domain.AuditEvent{
		EntityType: "certificate",
		EntityID:   cert.ID,
		Action:     domain.AuditActionCertificateIssued,
		ActorRole:  string(principal.Role),
		ActorName:  principal.Name,
		Details: map[string]any{
			"batch_number": cert.BatchNumber,
			"expires_at":   cert.ExpiresAt.Format(time.RFC3339),
		},
	})
	return cert, nil
}

// buildCredential assembles the W3C-shaped credential payload stored with
// the certificate and offered for download on the verification report.
func (s *CertificateIssuer) buildCredential(cert domain.Certificate, batch *domain.Batch, issuedAt time.Time) (domain.VerifiableCredential, error) {
	issuerDID := "did:web:" + didLabel(cert.QAAgencyName)
	subjectDID := "did:web:" + didLabel(cert.ExporterName)
	payload := map[string]any{
		"@context":       []string{"https://www.w3.org/2018/credentials/v1"},
		"type":           []string{"VerifiableCredential", "ExportComplianceCertificate"},
		"id":             fmt.Sprintf("%s/api/verify/%s", s.BaseURL, cert.ID),
		"issuer":         issuerDID,
		"issuanceDate":   issuedAt.Format(time.RFC3339),
		"expirationDate": cert.ExpiresAt.Format(time.RFC3339),
		"credentialSubject": map[string]any{
			"id":          subjectDID,
			"batchNumber": cert.BatchNumber,
			"productType": cert.ProductType,
			"origin":      batch.Location,
			"destination": batch.DestinationCountry,
			"quantity":    batch.Quantity,
			"unit":        batch.Unit,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.VerifiableCredential{}, err
	}
	return domain.VerifiableCredential{
		ID:            uuid.NewString(),
		CertificateID: cert.ID,
		IssuerDID:     issuerDID,
		SubjectDID:    subjectDID,
		VerifyURL:     fmt.Sprintf("%s/verify/%s", s.BaseURL, cert.ID),
		Credential:    raw,
		CreatedAt:     issuedAt,
	}, nil
}

func didLabel(name string) string {
	label := strings.ToLower(strings.TrimSpace(name))
	label = strings.ReplaceAll(label, " ", "-")
	if label == "" {
		label = "agripass"
	}
	return label
}
