package controllers

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ReportKind string

const (
	ReportAttendance  ReportKind = "attendance"
	ReportLeaves      ReportKind = "leaves"
	ReportPayroll     ReportKind = "payroll"
	ReportPerformance ReportKind = "performance"
)

const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	deps *Dependens
}

func NewReportController(deps *Dependens) *ReportController {
	return &ReportController{
		deps: deps,
	}
}

type report struct {
	sheet   string
	headers []string
	rows    [][]interface{}
}

// Export renders the requested report as a single-sheet xlsx workbook.
func (c *ReportController) Export(s *Session, kind ReportKind) (*bytes.Buffer, error) {
	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Report export denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	var r report
	switch kind {
	case ReportAttendance:
		r = c.attendance(s)
	case ReportLeaves:
		r = c.leaves(s)
	case ReportPayroll:
		r = c.payroll(s)
	case ReportPerformance:
		r = c.performance(s)
	default:
		return nil, fmt.Errorf("report %q: %w", kind, ErrNotFound)
	}

	buf, err := r.render()
	if err != nil {
		c.deps.Logger.Error("Failed to render report", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		return nil, err
	}

	c.deps.Logger.Info("Report exported", slog.String("kind", string(kind)), slog.String("email", s.Identity.Email))
	return buf, nil
}

func (c *ReportController) attendance(s *Session) report {
	r := report{
		sheet:   "Attendance",
		headers: []string{"ID", "Name", "Email", "Department", "Role", "Status"},
	}
	for _, u := range s.Workspace.Users.List(nil) {
		r.rows = append(r.rows, []interface{}{u.ID, u.FullName(), u.Email, u.Department, string(u.Role), string(u.Status)})
	}
	return r
}

func (c *ReportController) leaves(s *Session) report {
	r := report{
		sheet:   "Leaves",
		headers: []string{"ID", "Employee ID", "Employee", "Type", "From", "To", "Days", "Status", "Decided By"},
	}
	for _, l := range s.Workspace.Leaves.List(nil) {
		r.rows = append(r.rows, []interface{}{l.ID, l.EmployeeID, l.EmployeeName, l.Type.Label(), l.FromDate, l.ToDate, l.Days, string(l.Status), l.DecidedBy})
	}
	return r
}

func (c *ReportController) payroll(s *Session) report {
	r := report{
		sheet:   "Payroll",
		headers: []string{"ID", "Month", "Employee ID", "Employee", "Amount", "Status"},
	}
	for _, p := range s.Workspace.Payslips.List(nil) {
		r.rows = append(r.rows, []interface{}{p.ID, p.Month, p.EmployeeID, p.EmployeeName, p.Amount.StringFixed(2), string(p.Status)})
	}
	return r
}

// performance summarises each directory entry's task completion, approved
// leave days and open tickets.
func (c *ReportController) performance(s *Session) report {
	type stats struct {
		tasks, completed, leaveDays, openTickets int
	}

	byEmployee := make(map[string]*stats)
	get := func(id string) *stats {
		st, ok := byEmployee[id]
		if !ok {
			st = &stats{}
			byEmployee[id] = st
		}
		return st
	}

	ws := s.Workspace
	for _, t := range ws.Tasks.List(nil) {
		st := get(t.OwnerID)
		st.tasks++
		if t.Status == entity.TaskCompleted {
			st.completed++
		}
	}
	for _, l := range ws.Leaves.List(nil) {
		if l.Status == entity.LeaveApproved {
			get(l.EmployeeID).leaveDays += l.Days
		}
	}
	for _, t := range ws.Tickets.List(nil) {
		if t.Status != entity.TicketResolved {
			get(t.EmployeeID).openTickets++
		}
	}

	r := report{
		sheet:   "Performance",
		headers: []string{"Employee ID", "Name", "Department", "Tasks", "Completed", "Completion", "Approved Leave Days", "Open Tickets"},
	}
	for _, u := range ws.Users.List(nil) {
		st := get(u.EmployeeID)
		r.rows = append(r.rows, []interface{}{u.EmployeeID, u.FullName(), u.Department, st.tasks, st.completed, completionRate(st.completed, st.tasks), st.leaveDays, st.openTickets})
	}
	return r
}

func completionRate(completed, total int) string {
	if total == 0 {
		return "n/a"
	}
	rate := decimal.NewFromInt(int64(completed)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(total)))
	return rate.StringFixed(1) + "%"
}

func (r report) render() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(r.sheet); err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(r.sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	for i, header := range r.headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(r.sheet, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}
	if err := f.SetRowStyle(r.sheet, 1, 1, headerStyle); err != nil {
		return nil, err
	}

	for i, row := range r.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(r.sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
