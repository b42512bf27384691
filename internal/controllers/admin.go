package controllers

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/shopspring/decimal"
)

type AdminController struct {
	deps *Dependens
}

func NewAdminController(deps *Dependens) *AdminController {
	return &AdminController{
		deps: deps,
	}
}

// pendingLeavesWarning is the backlog size at which the leave alert becomes a warning.
const pendingLeavesWarning = 5

// GetDepartments lists departments with their headcount taken from the user directory.
func (c *AdminController) GetDepartments(s *Session) ([]entity.Department, error) {
	if err := s.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}

	headcount := make(map[string]int)
	for _, u := range s.Workspace.Users.List(nil) {
		headcount[strings.ToLower(u.Department)]++
	}

	departments := s.Workspace.Departments.List(nil)
	for i := range departments {
		departments[i].Employees = headcount[strings.ToLower(departments[i].Name)]
	}

	return departments, nil
}

func (c *AdminController) CreateDepartment(s *Session, req entity.CreateDepartmentRequest) (*entity.Department, error) {
	if err := s.Require(entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Department create denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	if err := c.deps.Validator.Struct(req); err != nil {
		c.deps.Logger.Warn("Invalid department", slog.String("error", err.Error()))
		return nil, err
	}

	if req.Budget.IsNegative() {
		return nil, invalidField("budget", "budget must not be negative")
	}

	exists := s.Workspace.Departments.Count(func(d entity.Department) bool {
		return strings.EqualFold(d.Name, req.Name)
	})
	if exists > 0 {
		c.deps.Logger.Warn("Department already exists", slog.String("name", req.Name))
		return nil, fmt.Errorf("department %q: %w", req.Name, ErrConflict)
	}

	dept := s.Workspace.Departments.Insert(func(id uint64) entity.Department {
		return entity.Department{ID: id, Name: req.Name, Budget: req.Budget, HeadID: req.HeadID}
	})
	dept.Employees = s.Workspace.Users.Count(func(u entity.User) bool {
		return strings.EqualFold(u.Department, dept.Name)
	})

	c.deps.recordActivity(s, entity.ActivityBudget, fmt.Sprintf("Department created: %s", dept.Name))

	return &dept, nil
}

// GetUsers lists the employee directory. HR sees it as the attendance overview.
func (c *AdminController) GetUsers(s *Session) ([]entity.User, error) {
	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		return nil, err
	}

	return s.Workspace.Users.List(nil), nil
}

func (c *AdminController) CreateUser(s *Session, req entity.CreateUserRequest) (*entity.User, error) {
	if err := s.Require(entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("User create denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	if err := c.deps.Validator.Struct(req); err != nil {
		c.deps.Logger.Warn("Invalid user", slog.String("error", err.Error()))
		return nil, err
	}

	exists := s.Workspace.Users.Count(func(u entity.User) bool {
		return strings.EqualFold(u.Email, req.Email)
	})
	if exists > 0 {
		c.deps.Logger.Warn("User already exists", slog.String("email", req.Email))
		return nil, fmt.Errorf("user %s: %w", req.Email, ErrConflict)
	}

	user := s.Workspace.Users.Insert(func(id uint64) entity.User {
		return entity.User{
			ID:         id,
			EmployeeID: employeeID(req.Role, id),
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Role:       req.Role,
			Department: req.Department,
			Status:     entity.UserStatusActive,
		}
	})

	c.deps.recordActivity(s, entity.ActivityUser, fmt.Sprintf("User created: %s", user.FullName()))

	return &user, nil
}

// employeeID derives a directory id such as EMP007 from the role and user id.
// Seeded ids stay below every generated one since user ids only grow.
func employeeID(role entity.Role, id uint64) string {
	prefix := "EMP"
	switch role {
	case entity.RoleHR:
		prefix = "HR"
	case entity.RoleAdmin:
		prefix = "ADM"
	}
	return fmt.Sprintf("%s%03d", prefix, id)
}

func (c *AdminController) GetSettings(s *Session) (entity.Settings, error) {
	if err := s.Require(entity.RoleAdmin); err != nil {
		return entity.Settings{}, err
	}

	return s.Workspace.Settings(), nil
}

func (c *AdminController) UpdateSettings(s *Session, settings entity.Settings) (entity.Settings, error) {
	if err := s.Require(entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Settings update denied", slog.String("email", s.Identity.Email))
		return entity.Settings{}, err
	}

	if err := c.deps.Validator.Struct(settings); err != nil {
		c.deps.Logger.Warn("Invalid settings", slog.String("error", err.Error()))
		return entity.Settings{}, err
	}

	s.Workspace.SetSettings(settings)
	c.deps.recordActivity(s, entity.ActivityPolicy, "System settings updated")

	return settings, nil
}

// GetOverview derives the admin headline numbers from the current workspace.
func (c *AdminController) GetOverview(s *Session) (*entity.Overview, error) {
	if err := s.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}

	ws := s.Workspace
	overview := &entity.Overview{
		TotalEmployees: ws.Users.Count(nil),
		ActiveUsers: ws.Users.Count(func(u entity.User) bool {
			return u.Status == entity.UserStatusActive
		}),
		TotalDepartments: ws.Departments.Count(nil),
		PendingRequests: ws.Leaves.Count(func(l entity.LeaveRequest) bool {
			return l.Status == entity.LeavePending
		}),
		OpenTickets: ws.Tickets.Count(func(t entity.SupportTicket) bool {
			return t.Status != entity.TicketResolved
		}),
		MonthlyPayroll: decimal.Zero,
	}

	payslips := ws.Payslips.List(nil)
	latest := ""
	for _, p := range payslips {
		if p.Month > latest {
			latest = p.Month
		}
	}
	for _, p := range payslips {
		if p.Month == latest {
			overview.MonthlyPayroll = overview.MonthlyPayroll.Add(p.Amount)
		}
	}

	return overview, nil
}

// GetActivities returns up to limit activities, newest first. limit <= 0 means all.
func (c *AdminController) GetActivities(s *Session, limit int) ([]entity.Activity, error) {
	if err := s.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}

	activities := s.Workspace.Activities.List(nil)
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Time.After(activities[j].Time)
	})

	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}

	return activities, nil
}

// GetAlerts derives system notices from the workspace: leave backlog, urgent
// tickets, absences and whether this month's payroll has been uploaded.
func (c *AdminController) GetAlerts(s *Session) ([]entity.Alert, error) {
	if err := s.Require(entity.RoleAdmin); err != nil {
		return nil, err
	}

	ws := s.Workspace
	alerts := make([]entity.Alert, 0, 4)

	pending := ws.Leaves.Count(func(l entity.LeaveRequest) bool {
		return l.Status == entity.LeavePending
	})
	switch {
	case pending >= pendingLeavesWarning:
		alerts = append(alerts, entity.Alert{Level: entity.AlertWarning, Message: fmt.Sprintf("High number of leave requests pending: %d", pending)})
	case pending > 0:
		alerts = append(alerts, entity.Alert{Level: entity.AlertInfo, Message: fmt.Sprintf("Leave requests awaiting a decision: %d", pending)})
	}

	urgent := ws.Tickets.Count(func(t entity.SupportTicket) bool {
		return t.Priority == entity.PriorityUrgent && t.Status != entity.TicketResolved
	})
	if urgent > 0 {
		alerts = append(alerts, entity.Alert{Level: entity.AlertWarning, Message: fmt.Sprintf("Urgent support tickets open: %d", urgent)})
	}

	absent := ws.Users.Count(func(u entity.User) bool {
		return u.Status == entity.UserStatusAbsent
	})
	if absent > 0 {
		alerts = append(alerts, entity.Alert{Level: entity.AlertInfo, Message: fmt.Sprintf("Employees absent: %d", absent)})
	}

	month := c.deps.Clock.Now().Format("2006-01")
	uploaded := ws.Payslips.Count(func(p entity.Payslip) bool {
		return p.Month == month
	})
	if uploaded > 0 {
		alerts = append(alerts, entity.Alert{Level: entity.AlertSuccess, Message: fmt.Sprintf("Payroll for %s uploaded", month)})
	} else {
		alerts = append(alerts, entity.Alert{Level: entity.AlertInfo, Message: fmt.Sprintf("Payroll for %s has not been uploaded", month)})
	}

	return alerts, nil
}
