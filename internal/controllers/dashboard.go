package controllers

import (
	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/adamanr/workflow_portal/internal/view"
)

// Item pairs a record with the badges a dashboard shows next to it.
type Item[T any] struct {
	Record   T           `json:"record"`
	Status   view.Badge  `json:"status"`
	Priority *view.Badge `json:"priority,omitempty"`
}

func annotate[T any](records []T, status func(T) string, priority func(T) string) []Item[T] {
	items := make([]Item[T], 0, len(records))
	for _, r := range records {
		item := Item[T]{Record: r, Status: view.StatusBadge(status(r))}
		if priority != nil {
			badge := view.PriorityBadge(priority(r))
			item.Priority = &badge
		}
		items = append(items, item)
	}
	return items
}

type Profile struct {
	Identity   entity.Identity `json:"identity"`
	Role       view.Badge      `json:"role"`
	Privileged bool            `json:"privileged"`
}

func newProfile(s *Session) Profile {
	role := string(s.Identity.Role)

	return Profile{
		Identity:   s.Identity,
		Role:       view.Badge{Label: role, Category: view.ClassifyRole(role)},
		Privileged: s.Privileged(),
	}
}

type EmployeeDashboard struct {
	View       string                       `json:"view"`
	Profile    Profile                      `json:"profile"`
	Attendance *entity.Attendance           `json:"attendance"`
	Tasks      []Item[entity.Task]          `json:"tasks"`
	Leaves     []Item[entity.LeaveRequest]  `json:"leaves"`
	Holidays   []entity.Holiday             `json:"holidays"`
	Payslips   []Item[entity.Payslip]       `json:"payslips"`
	Tickets    []Item[entity.SupportTicket] `json:"tickets"`
}

type HRDashboard struct {
	View          string                       `json:"view"`
	Profile       Profile                      `json:"profile"`
	Attendance    *entity.Attendance           `json:"attendance"`
	Employees     []Item[entity.User]          `json:"employees"`
	PendingLeaves []Item[entity.LeaveRequest]  `json:"pending_leaves"`
	OpenTickets   []Item[entity.SupportTicket] `json:"open_tickets"`
	Holidays      []entity.Holiday             `json:"holidays"`
	Payslips      []Item[entity.Payslip]       `json:"payslips"`
}

type AdminDashboard struct {
	View        string              `json:"view"`
	Profile     Profile             `json:"profile"`
	Overview    *entity.Overview    `json:"overview"`
	Alerts      []entity.Alert      `json:"alerts"`
	Departments []entity.Department `json:"departments"`
	Users       []Item[entity.User] `json:"users"`
	Settings    entity.Settings     `json:"settings"`
	Activities  []entity.Activity   `json:"activities"`
}

const dashboardActivities = 10

// DashboardController assembles dashboards from the other controllers' reads.
type DashboardController struct {
	deps       *Dependens
	admin      *AdminController
	leaves     *LeaveController
	tickets    *TicketController
	attendance *AttendanceController
}

func NewDashboardController(deps *Dependens, admin *AdminController, leaves *LeaveController, tickets *TicketController, attendance *AttendanceController) *DashboardController {
	return &DashboardController{
		deps:       deps,
		admin:      admin,
		leaves:     leaves,
		tickets:    tickets,
		attendance: attendance,
	}
}

func taskStatus(t entity.Task) string { return string(t.Status) }
func taskPriority(t entity.Task) string { return string(t.Priority) }
func leaveStatus(l entity.LeaveRequest) string { return string(l.Status) }
func ticketStatus(t entity.SupportTicket) string { return string(t.Status) }
func ticketPriority(t entity.SupportTicket) string { return string(t.Priority) }
func payslipStatus(p entity.Payslip) string { return string(p.Status) }
func userStatus(u entity.User) string { return string(u.Status) }

// Build resolves the session's view once and assembles that dashboard.
func (c *DashboardController) Build(s *Session) (any, error) {
	switch v := s.View(); v {
	case view.AdminView:
		return c.adminDashboard(s, v)
	case view.HRView:
		return c.hrDashboard(s, v)
	case view.EmployeeView:
		return c.employeeDashboard(s, v), nil
	}

	return nil, ErrUnauthorized
}

func (c *DashboardController) adminDashboard(s *Session, v view.View) (*AdminDashboard, error) {
	overview, err := c.admin.GetOverview(s)
	if err != nil {
		return nil, err
	}
	alerts, err := c.admin.GetAlerts(s)
	if err != nil {
		return nil, err
	}
	departments, err := c.admin.GetDepartments(s)
	if err != nil {
		return nil, err
	}
	users, err := c.admin.GetUsers(s)
	if err != nil {
		return nil, err
	}
	settings, err := c.admin.GetSettings(s)
	if err != nil {
		return nil, err
	}
	activities, err := c.admin.GetActivities(s, dashboardActivities)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		View:        v.String(),
		Profile:     newProfile(s),
		Overview:    overview,
		Alerts:      alerts,
		Departments: departments,
		Users:       annotate(users, userStatus, nil),
		Settings:    settings,
		Activities:  activities,
	}, nil
}

func (c *DashboardController) hrDashboard(s *Session, v view.View) (*HRDashboard, error) {
	users, err := c.admin.GetUsers(s)
	if err != nil {
		return nil, err
	}
	pending, err := c.leaves.GetPendingLeaves(s)
	if err != nil {
		return nil, err
	}
	open, err := c.tickets.GetOpenTickets(s)
	if err != nil {
		return nil, err
	}

	return &HRDashboard{
		View:          v.String(),
		Profile:       newProfile(s),
		Attendance:    c.attendance.GetAttendance(s),
		Employees:     annotate(users, userStatus, nil),
		PendingLeaves: annotate(pending, leaveStatus, nil),
		OpenTickets:   annotate(open, ticketStatus, ticketPriority),
		Holidays:      s.Workspace.Holidays.List(nil),
		Payslips:      annotate(s.Workspace.Payslips.List(nil), payslipStatus, nil),
	}, nil
}

func (c *DashboardController) employeeDashboard(s *Session, v view.View) *EmployeeDashboard {
	ws := s.Workspace
	own := s.Identity.EmployeeID

	return &EmployeeDashboard{
		View:       v.String(),
		Profile:    newProfile(s),
		Attendance: c.attendance.GetAttendance(s),
		Tasks: annotate(ws.Tasks.List(func(t entity.Task) bool {
			return t.OwnerID == own
		}), taskStatus, taskPriority),
		Leaves: annotate(ws.Leaves.List(func(l entity.LeaveRequest) bool {
			return l.EmployeeID == own
		}), leaveStatus, nil),
		Holidays: ws.Holidays.List(nil),
		Payslips: annotate(ws.Payslips.List(func(p entity.Payslip) bool {
			return p.EmployeeID == own
		}), payslipStatus, nil),
		Tickets: annotate(ws.Tickets.List(func(t entity.SupportTicket) bool {
			return t.EmployeeID == own
		}), ticketStatus, ticketPriority),
	}
}
