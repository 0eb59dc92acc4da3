package domain

import (
	"encoding/json"
	"time"
)

type ReportStatus string

const (
	ReportStatusValid   ReportStatus = "VALID"
	ReportStatusExpired ReportStatus = "EXPIRED"
)

// IssuerType is the fixed type label reported for certificate issuers.
const IssuerType = "Quality Assurance Agency"

// VerificationReport is the consolidated read model returned for a
// certificate lookup. Optional fields are pointers so that absent data
// serializes as null rather than being omitted.
type VerificationReport struct {
	Status        ReportStatus     `json:"status"`
	CertificateID string           `json:"certificate_id"`
	BatchNumber   string           `json:"batch_number"`
	URLs          VerificationURLs `json:"verification_urls"`
	IssuedAt      time.Time        `json:"issued_at"`
	ExpiresAt     time.Time        `json:"expires_at"`
	IsExpired     bool             `json:"is_expired"`
	CheckedAt     time.Time        `json:"checked_at"`
	Issuer        IssuerInfo       `json:"issuer"`
	Holder        HolderInfo       `json:"holder"`
	Product       ProductInfo      `json:"product"`
	Quality       *QualityMetrics  `json:"quality_metrics"`
	Credential    json.RawMessage  `json:"credential_data"`
	Warnings      []string         `json:"warnings"`
}

type VerificationURLs struct {
	InjiVerify   *string `json:"inji_verify"`
	ThisEndpoint string  `json:"this_endpoint"`
	PublicPage   string  `json:"public_page"`
}

type IssuerInfo struct {
	Name string  `json:"name"`
	DID  *string `json:"did"`
	Type string  `json:"type"`
}

type HolderInfo struct {
	Name         string  `json:"name"`
	Organization *string `json:"organization"`
	DID          *string `json:"did"`
	Email        *string `json:"email"`
}

type ProductInfo struct {
	Type        string   `json:"type"`
	BatchNumber string   `json:"batch_number"`
	Origin      *string  `json:"origin"`
	Destination *string  `json:"destination"`
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	HarvestDate *string  `json:"harvest_date"`
}

type QualityMetrics struct {
	Moisture         *float64      `json:"moisture"`
	PesticideResidue *float64      `json:"pesticide_residue"`
	Organic          bool          `json:"organic"`
	Grade            string        `json:"grade"`
	InspectionDate   time.Time     `json:"inspection_date"`
	Inspector        InspectorInfo `json:"inspector"`
	Notes            string        `json:"notes"`
}

type InspectorInfo struct {
	Name         *string `json:"name"`
	Organization *string `json:"organization"`
}
