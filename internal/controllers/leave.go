package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adamanr/workflow_portal/internal/database"
	"github.com/adamanr/workflow_portal/internal/entity"
)

const dateLayout = "2006-01-02"

// CountLeaveDays returns the inclusive number of calendar days between two
// YYYY-MM-DD dates. A range that ends before it starts is rejected.
func CountLeaveDays(fromDate, toDate string) (int, error) {
	from, err := time.Parse(dateLayout, fromDate)
	if err != nil {
		return 0, invalidField("from_date", "from_date must be a date in YYYY-MM-DD format")
	}

	to, err := time.Parse(dateLayout, toDate)
	if err != nil {
		return 0, invalidField("to_date", "to_date must be a date in YYYY-MM-DD format")
	}

	if to.Before(from) {
		return 0, invalidField("to_date", "to_date must not be before from_date")
	}

	return int(to.Sub(from).Hours()/24) + 1, nil
}

type LeaveController struct {
	deps *Dependens
}

func NewLeaveController(deps *Dependens) *LeaveController {
	return &LeaveController{
		deps: deps,
	}
}

// GetLeaves returns the session's own requests, or every request when all is
// set. Only HR and admin may ask for all.
func (c *LeaveController) GetLeaves(s *Session, all bool) ([]entity.LeaveRequest, error) {
	if !all {
		return s.Workspace.Leaves.List(func(l entity.LeaveRequest) bool {
			return l.EmployeeID == s.Identity.EmployeeID
		}), nil
	}

	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Leave listing denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	return s.Workspace.Leaves.List(nil), nil
}

// GetPendingLeaves returns every request still awaiting an HR decision.
func (c *LeaveController) GetPendingLeaves(s *Session) ([]entity.LeaveRequest, error) {
	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Pending leave listing denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	return s.Workspace.Leaves.List(func(l entity.LeaveRequest) bool {
		return l.Status == entity.LeavePending
	}), nil
}

// GetLeave returns a single request. Employees only see their own; HR and
// admin see any.
func (c *LeaveController) GetLeave(s *Session, id uint64) (*entity.LeaveRequest, error) {
	leave, ok := s.Workspace.Leaves.Get(id)
	if !ok || (leave.EmployeeID != s.Identity.EmployeeID && !s.Privileged()) {
		return nil, fmt.Errorf("leave %d: %w", id, ErrNotFound)
	}

	return &leave, nil
}

func (c *LeaveController) SubmitLeave(s *Session, req entity.CreateLeaveRequest) (*entity.LeaveRequest, error) {
	if err := c.deps.Validator.Struct(req); err != nil {
		c.deps.Logger.Warn("Invalid leave request", slog.String("error", err.Error()))
		return nil, err
	}

	days, err := CountLeaveDays(req.FromDate, req.ToDate)
	if err != nil {
		c.deps.Logger.Warn("Invalid leave dates", slog.String("error", err.Error()))
		return nil, err
	}

	leave := s.Workspace.Leaves.Insert(func(id uint64) entity.LeaveRequest {
		return entity.LeaveRequest{
			ID:           id,
			EmployeeID:   s.Identity.EmployeeID,
			EmployeeName: s.Identity.Name,
			Type:         req.Type,
			FromDate:     req.FromDate,
			ToDate:       req.ToDate,
			Days:         days,
			Reason:       req.Reason,
			Status:       entity.LeavePending,
		}
	})

	c.deps.recordActivity(s, entity.ActivityLeave, fmt.Sprintf("%s requested for %d day(s)", leave.Type.Label(), days))

	return &leave, nil
}

func (c *LeaveController) ApproveLeave(s *Session, id uint64) (*entity.LeaveRequest, error) {
	return c.decide(s, id, entity.DecisionApprove)
}

func (c *LeaveController) RejectLeave(s *Session, id uint64) (*entity.LeaveRequest, error) {
	return c.decide(s, id, entity.DecisionReject)
}

// decide moves a pending request to approved or rejected. Decided requests
// never change again.
func (c *LeaveController) decide(s *Session, id uint64, decision entity.LeaveDecision) (*entity.LeaveRequest, error) {
	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Leave decision denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	next := entity.LeaveApproved
	if decision == entity.DecisionReject {
		next = entity.LeaveRejected
	}

	leave, err := s.Workspace.Leaves.Update(id, func(l entity.LeaveRequest) (entity.LeaveRequest, error) {
		if l.Status.IsTerminal() {
			return l, fmt.Errorf("leave %d already %s: %w", id, l.Status, ErrInvalidTransition)
		}

		l.Status = next
		l.DecidedBy = s.Identity.Name
		return l, nil
	})
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			c.deps.Logger.Warn("Leave not found", slog.Uint64("id", id))
			return nil, fmt.Errorf("leave %d: %w", id, ErrNotFound)
		}

		c.deps.Logger.Warn("Error deciding leave", slog.String("error", err.Error()))
		return nil, err
	}

	c.deps.Metrics.LeaveDecisions.WithLabelValues(string(decision)).Inc()
	c.deps.recordActivity(s, entity.ActivityLeave, fmt.Sprintf("Leave %s for %s", leave.Status, leave.EmployeeName))

	return &leave, nil
}
