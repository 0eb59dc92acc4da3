package policy

import (
	"context"
	"testing"

	"agripass/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func TestAllowByRole(t *testing.T) {
	engine := newTestEngine(t)
	cases := []struct {
		role    domain.Role
		action  string
		allowed bool
	}{
		{domain.RoleExporter, "batch:create", true},
		{domain.RoleExporter, "inspection:record", false},
		{domain.RoleExporter, "view:batch-submission", true},
		{domain.RoleExporter, "view:audit-logs", false},
		{domain.RoleQAAgency, "inspection:record", true},
		{domain.RoleQAAgency, "certificate:issue", true},
		{domain.RoleQAAgency, "batch:create", false},
		{domain.RoleImporter, "passport:list", true},
		{domain.RoleImporter, "certificate:issue", false},
		{domain.RoleAdmin, "view:audit-logs", true},
		{domain.RoleAdmin, "inspection:record", true},
	}
	for _, tc := range cases {
		got, err := engine.Allow(context.Background(), domain.Principal{Role: tc.role}, tc.action)
		if err != nil {
			t.Fatalf("Allow(%s, %s): %v", tc.role, tc.action, err)
		}
		if got != tc.allowed {
			t.Fatalf("Allow(%s, %s) = %v, want %v", tc.role, tc.action, got, tc.allowed)
		}
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	engine := newTestEngine(t)
	allowed, err := engine.Allow(context.Background(), domain.Principal{Role: domain.Role("GUEST")}, "batch:list")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if allowed {
		t.Fatal("expected unknown role to be denied")
	}
}
