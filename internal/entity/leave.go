package entity

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// IsTerminal reports whether no further decision may be taken on the request.
func (s LeaveStatus) IsTerminal() bool {
	return s == LeaveApproved || s == LeaveRejected
}

type LeaveType string

const (
	LeaveAnnual    LeaveType = "annual"
	LeaveSick      LeaveType = "sick"
	LeavePersonal  LeaveType = "personal"
	LeaveEmergency LeaveType = "emergency"
)

func (t LeaveType) Label() string {
	switch t {
	case LeaveAnnual:
		return "Annual Leave"
	case LeaveSick:
		return "Sick Leave"
	case LeavePersonal:
		return "Personal Leave"
	case LeaveEmergency:
		return "Emergency Leave"
	}
	return string(t)
}

type LeaveDecision string

const (
	DecisionApprove LeaveDecision = "approve"
	DecisionReject  LeaveDecision = "reject"
)

type LeaveRequest struct {
	ID           uint64      `json:"id"`
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	Type         LeaveType   `json:"type"`
	FromDate     string      `json:"from_date"`
	ToDate       string      `json:"to_date"`
	Days         int         `json:"days"`
	Reason       string      `json:"reason"`
	Status       LeaveStatus `json:"status"`
	DecidedBy    string      `json:"decided_by,omitempty"`
}

func (l LeaveRequest) Key() uint64 { return l.ID }

type CreateLeaveRequest struct {
	Type     LeaveType `json:"type" validate:"required,oneof=annual sick personal emergency"`
	FromDate string    `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate   string    `json:"to_date" validate:"required,datetime=2006-01-02"`
	Reason   string    `json:"reason" validate:"required"`
}
