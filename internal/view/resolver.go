// Package view maps identities to dashboards and statuses to badge categories.
package view

import "github.com/adamanr/workflow_portal/internal/entity"

type View int

const (
	NoView View = iota
	EmployeeView
	HRView
	AdminView
)

func (v View) String() string {
	switch v {
	case EmployeeView:
		return "employee"
	case HRView:
		return "hr"
	case AdminView:
		return "admin"
	}
	return "none"
}

// Resolve picks the dashboard for an identity. A nil identity has no view and
// any role outside the known set falls back to the employee dashboard.
func Resolve(identity *entity.Identity) View {
	if identity == nil {
		return NoView
	}

	switch identity.Role {
	case entity.RoleHR:
		return HRView
	case entity.RoleAdmin:
		return AdminView
	default:
		return EmployeeView
	}
}
