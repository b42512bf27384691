package view

import (
	"testing"

	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		identity *entity.Identity
		want     View
	}{
		{name: "no identity", identity: nil, want: NoView},
		{name: "employee", identity: &entity.Identity{Role: entity.RoleEmployee}, want: EmployeeView},
		{name: "hr", identity: &entity.Identity{Role: entity.RoleHR}, want: HRView},
		{name: "admin", identity: &entity.Identity{Role: entity.RoleAdmin}, want: AdminView},
		{name: "corrupted role", identity: &entity.Identity{Role: "superuser"}, want: EmployeeView},
		{name: "empty role", identity: &entity.Identity{}, want: EmployeeView},
		{name: "case sensitive", identity: &entity.Identity{Role: "Admin"}, want: EmployeeView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, Resolve(tt.identity))
			})
		})
	}
}

func TestView_String(t *testing.T) {
	assert.Equal(t, "none", NoView.String())
	assert.Equal(t, "employee", EmployeeView.String())
	assert.Equal(t, "hr", HRView.String())
	assert.Equal(t, "admin", AdminView.String())
	assert.Equal(t, "none", View(42).String())
}
