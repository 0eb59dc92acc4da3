package domain

import "time"

type Role string

const (
	RoleExporter Role = "EXPORTER"
	RoleQAAgency Role = "QA_AGENCY"
	RoleImporter Role = "IMPORTER"
	RoleAdmin    Role = "ADMIN"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleExporter, RoleQAAgency, RoleImporter, RoleAdmin:
		return Role(value), true
	}
	return "", false
}

// Actor is a known participant: an exporter, an inspecting agency, an
// importer or an auditor.
type Actor struct {
	ID           string
	Name         string
	Email        string
	Organization string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	Subject      string
	Name         string
	Email        string
	Organization string
	Role         Role
}

type View string

const (
	ViewDashboard          View = "dashboard"
	ViewBatchSubmission    View = "batch-submission"
	ViewInspectionRequests View = "inspection-requests"
	ViewDigitalPassports   View = "digital-passports"
	ViewAuditLogs          View = "audit-logs"
	ViewInjiVerify         View = "inji-verify"
)

func ParseView(value string) (View, bool) {
	switch View(value) {
	case ViewDashboard, ViewBatchSubmission, ViewInspectionRequests,
		ViewDigitalPassports, ViewAuditLogs, ViewInjiVerify:
		return View(value), true
	}
	return "", false
}

// DefaultView is the screen a role lands on after sign-in.
func DefaultView(role Role) View {
	switch role {
	case RoleQAAgency:
		return ViewInspectionRequests
	case RoleImporter:
		return ViewDigitalPassports
	case RoleAdmin:
		return ViewAuditLogs
	default:
		return ViewDashboard
	}
}
