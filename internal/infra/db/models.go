package db

import "time"

type ActorModel struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"index"`
	Organization string
	Role         string    `gorm:"index;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

type BatchModel struct {
	ID                 string    `gorm:"type:uuid;primaryKey"`
	BatchNumber        string    `gorm:"uniqueIndex;not null"`
	ExporterID         string    `gorm:"type:uuid;index"`
	ExporterName       string    `gorm:"not null"`
	CropType           string    `gorm:"not null"`
	Variety            string
	Quantity           float64   `gorm:"not null"`
	Unit               string    `gorm:"not null"`
	Location           string    `gorm:"not null"`
	PinCode            string
	DestinationCountry string    `gorm:"not null"`
	HarvestDate        time.Time
	TestsJSON          []byte    `gorm:"column:tests;type:jsonb"`
	Status             string    `gorm:"index;not null"`
	SubmittedAt        time.Time `gorm:"index;not null"`
}

type InspectionModel struct {
	ID               string `gorm:"type:uuid;primaryKey"`
	BatchID          string `gorm:"type:uuid;uniqueIndex;not null"`
	InspectorName    string `gorm:"not null"`
	InspectorOrg     string
	Moisture         *float64
	PesticideResidue *float64
	HeavyMetals      *float64
	Aflatoxin        *float64
	MicrobialLoad    *string
	Organic          bool
	Grade            string    `gorm:"not null"`
	Notes            string
	InspectedAt      time.Time `gorm:"not null"`
}

type CertificateModel struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	BatchID      string    `gorm:"type:uuid;index;not null"`
	BatchNumber  string    `gorm:"index;not null"`
	ProductType  string    `gorm:"not null"`
	ExporterName string    `gorm:"index;not null"`
	QAAgencyName string    `gorm:"not null"`
	IssuedAt     time.Time `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null"`
}

type CredentialModel struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	CertificateID  string    `gorm:"type:uuid;uniqueIndex;not null"`
	IssuerDID      string
	SubjectDID     string
	VerifyURL      string
	CredentialJSON []byte    `gorm:"type:jsonb"`
	CreatedAt      time.Time `gorm:"not null"`
}

type AuditEventModel struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	EntityType  string    `gorm:"index;not null"`
	EntityID    string    `gorm:"index;not null"`
	Action      string    `gorm:"index;not null"`
	ActorRole   string    `gorm:"not null"`
	ActorName   string
	DetailsJSON []byte    `gorm:"column:details;type:jsonb"`
	CreatedAt   time.Time `gorm:"index;not null"`
}
