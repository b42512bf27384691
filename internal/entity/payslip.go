package entity

import "github.com/shopspring/decimal"

type PayslipStatus string

const (
	PayslipUploaded PayslipStatus = "uploaded"
	PayslipSent     PayslipStatus = "sent"
)

type Payslip struct {
	ID           uint64          `json:"id"`
	Month        string          `json:"month"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Amount       decimal.Decimal `json:"amount"`
	Status       PayslipStatus   `json:"status"`
}

func (p Payslip) Key() uint64 { return p.ID }

type PayslipEntry struct {
	EmployeeID   string          `json:"employee_id" validate:"required"`
	EmployeeName string          `json:"employee_name" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
}

// UploadPayslipsRequest creates one payslip per entry for the given month.
// Amounts are supplied by the caller; nothing is computed here.
type UploadPayslipsRequest struct {
	Month   string         `json:"month" validate:"required,datetime=2006-01"`
	Entries []PayslipEntry `json:"entries" validate:"required,min=1,dive"`
}
