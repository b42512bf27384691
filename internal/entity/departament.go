package entity

import "github.com/shopspring/decimal"

// Department headcount in Employees is counted from the user directory on every read.
type Department struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Budget    decimal.Decimal `json:"budget"`
	HeadID    *string         `json:"head_id"`
	Employees int             `json:"employees"`
}

func (d Department) Key() uint64 { return d.ID }

type CreateDepartmentRequest struct {
	Name   string          `json:"name" validate:"required"`
	Budget decimal.Decimal `json:"budget"`
	HeadID *string         `json:"head_id"`
}
