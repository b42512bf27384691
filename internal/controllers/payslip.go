package controllers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/adamanr/workflow_portal/internal/database"
	"github.com/adamanr/workflow_portal/internal/entity"
)

type PayslipController struct {
	deps *Dependens
}

func NewPayslipController(deps *Dependens) *PayslipController {
	return &PayslipController{
		deps: deps,
	}
}

func (c *PayslipController) GetPayslips(s *Session, all bool) ([]entity.Payslip, error) {
	if !all {
		return s.Workspace.Payslips.List(func(p entity.Payslip) bool {
			return p.EmployeeID == s.Identity.EmployeeID
		}), nil
	}

	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		return nil, err
	}

	return s.Workspace.Payslips.List(nil), nil
}

// UploadPayslips records one payslip per entry in a single batch. Every
// amount comes from the request and must be positive.
func (c *PayslipController) UploadPayslips(s *Session, req entity.UploadPayslipsRequest) ([]entity.Payslip, error) {
	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Payslip upload denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	if err := c.deps.Validator.Struct(req); err != nil {
		c.deps.Logger.Warn("Invalid payslip upload", slog.String("error", err.Error()))
		return nil, err
	}

	for i, e := range req.Entries {
		if !e.Amount.IsPositive() {
			return nil, invalidField(fmt.Sprintf("entries[%d].amount", i), "amount must be greater than zero")
		}
	}

	payslips := s.Workspace.Payslips.InsertBatch(len(req.Entries), func(i int, id uint64) entity.Payslip {
		e := req.Entries[i]
		return entity.Payslip{
			ID:           id,
			Month:        req.Month,
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			Amount:       e.Amount,
			Status:       entity.PayslipUploaded,
		}
	})

	c.deps.recordActivity(s, entity.ActivityPayroll, fmt.Sprintf("%d payslip(s) uploaded for %s", len(payslips), req.Month))
	c.deps.Logger.Info("Payslips uploaded", slog.String("month", req.Month), slog.Int("count", len(payslips)))

	return payslips, nil
}

func (c *PayslipController) SendPayslip(s *Session, id uint64) (*entity.Payslip, error) {
	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		return nil, err
	}

	payslip, err := s.Workspace.Payslips.Update(id, func(p entity.Payslip) (entity.Payslip, error) {
		if p.Status == entity.PayslipSent {
			return p, fmt.Errorf("payslip %d already sent: %w", id, ErrInvalidTransition)
		}

		p.Status = entity.PayslipSent
		return p, nil
	})
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			c.deps.Logger.Warn("Payslip not found", slog.Uint64("id", id))
			return nil, fmt.Errorf("payslip %d: %w", id, ErrNotFound)
		}

		return nil, err
	}

	return &payslip, nil
}
