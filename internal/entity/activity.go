package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ActivityType string

const (
	ActivityUser    ActivityType = "user"
	ActivityPayroll ActivityType = "payroll"
	ActivityPolicy  ActivityType = "policy"
	ActivityBudget  ActivityType = "budget"
	ActivityLeave   ActivityType = "leave"
	ActivityTicket  ActivityType = "ticket"
	ActivityHoliday ActivityType = "holiday"
	ActivityTask    ActivityType = "task"
)

type Activity struct {
	ID     uint64       `json:"id"`
	Action string       `json:"action"`
	Actor  string       `json:"actor"`
	Type   ActivityType `json:"type"`
	Time   time.Time    `json:"time"`
}

func (a Activity) Key() uint64 { return a.ID }

type Overview struct {
	TotalEmployees   int             `json:"total_employees"`
	ActiveUsers      int             `json:"active_users"`
	TotalDepartments int             `json:"total_departments"`
	PendingRequests  int             `json:"pending_requests"`
	OpenTickets      int             `json:"open_tickets"`
	MonthlyPayroll   decimal.Decimal `json:"monthly_payroll"`
}

type Attendance struct {
	CheckedIn      bool       `json:"checked_in"`
	Since          *time.Time `json:"since,omitempty"`
	LastAction     *time.Time `json:"last_action,omitempty"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
	Elapsed        string     `json:"elapsed"`
}
