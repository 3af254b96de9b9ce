package domain_test

import (
	"testing"

	"github.com/voltrack/voltrack/internal/domain"
)

func TestRoleOrder(t *testing.T) {
	tests := []struct {
		caller domain.Role
		min    domain.Role
		want   bool
	}{
		{domain.RoleVolunteer, domain.RoleVolunteer, true},
		{domain.RoleVolunteer, domain.RoleReporter, false},
		{domain.RoleVolunteer, domain.RoleAdmin, false},
		{domain.RoleReporter, domain.RoleReporter, true},
		{domain.RoleReporter, domain.RoleAdmin, false},
		{domain.RoleAdmin, domain.RoleVolunteer, true},
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.Role("unknown"), domain.RoleVolunteer, false},
	}
	for _, tt := range tests {
		if got := tt.caller.AtLeast(tt.min); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.caller, tt.min, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range domain.Roles {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if domain.Role("superuser").Valid() {
		t.Error("unknown role should be invalid")
	}
}
