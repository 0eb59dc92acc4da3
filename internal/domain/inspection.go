package domain

import "time"

// Test names a batch may request. Every test except organic certification
// maps to a measured value on the inspection form.
const (
	TestMoisture      = "Moisture Content"
	TestPesticide     = "Pesticide Residue"
	TestHeavyMetals   = "Heavy Metals"
	TestAflatoxin     = "Aflatoxin"
	TestMicrobialLoad = "Microbial Load"
	TestOrganic       = "Organic Certification"
)

// Inspection holds the recorded quality-test results for a batch. It is
// written once when the inspector submits results and never mutated.
type Inspection struct {
	ID               string
	BatchID          string
	InspectorName    string
	InspectorOrg     string
	Moisture         *float64
	PesticideResidue *float64
	HeavyMetals      *float64
	Aflatoxin        *float64
	MicrobialLoad    *string
	Organic          bool
	Grade            string
	Notes            string
	InspectedAt      time.Time
}
