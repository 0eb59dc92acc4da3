package domain

import (
	"encoding/json"
	"time"
)

// Certificate is an issued, time-bounded attestation over a certified batch.
// Its validity is derived from ExpiresAt at read time and never stored.
type Certificate struct {
	ID           string
	BatchID      string
	BatchNumber  string
	ProductType  string
	ExporterName string
	QAAgencyName string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

func (c Certificate) ExpiredAt(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// VerifiableCredential is the signed credential record backing a certificate.
// A certificate may exist without one; readers must degrade gracefully.
type VerifiableCredential struct {
	ID            string
	CertificateID string
	IssuerDID     string
	SubjectDID    string
	VerifyURL     string
	Credential    json.RawMessage
	CreatedAt     time.Time
}
