package controllers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/adamanr/workflow_portal/internal/database"
	"github.com/adamanr/workflow_portal/internal/entity"
)

type TicketController struct {
	deps *Dependens
}

func NewTicketController(deps *Dependens) *TicketController {
	return &TicketController{
		deps: deps,
	}
}

func (c *TicketController) GetTickets(s *Session, all bool) ([]entity.SupportTicket, error) {
	if !all {
		return s.Workspace.Tickets.List(func(t entity.SupportTicket) bool {
			return t.EmployeeID == s.Identity.EmployeeID
		}), nil
	}

	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		return nil, err
	}

	return s.Workspace.Tickets.List(nil), nil
}

// GetOpenTickets returns every ticket not yet resolved.
func (c *TicketController) GetOpenTickets(s *Session) ([]entity.SupportTicket, error) {
	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Open ticket listing denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	return s.Workspace.Tickets.List(func(t entity.SupportTicket) bool {
		return t.Status != entity.TicketResolved
	}), nil
}

func (c *TicketController) GetTicket(s *Session, id uint64) (*entity.SupportTicket, error) {
	ticket, ok := s.Workspace.Tickets.Get(id)
	if !ok || (ticket.EmployeeID != s.Identity.EmployeeID && !s.Privileged()) {
		return nil, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
	}

	return &ticket, nil
}

func (c *TicketController) SubmitTicket(s *Session, req entity.CreateTicketRequest) (*entity.SupportTicket, error) {
	if err := c.deps.Validator.Struct(req); err != nil {
		c.deps.Logger.Warn("Invalid ticket", slog.String("error", err.Error()))
		return nil, err
	}

	created := c.deps.Clock.Now().Format(dateLayout)
	ticket := s.Workspace.Tickets.Insert(func(id uint64) entity.SupportTicket {
		return entity.SupportTicket{
			ID:           id,
			EmployeeID:   s.Identity.EmployeeID,
			EmployeeName: s.Identity.Name,
			Title:        req.Title,
			Category:     req.Category,
			Description:  req.Description,
			Priority:     req.Priority,
			Status:       entity.TicketOpen,
			CreatedDate:  created,
		}
	})

	c.deps.recordActivity(s, entity.ActivityTicket, fmt.Sprintf("Ticket opened: %s", ticket.Title))

	return &ticket, nil
}

func (c *TicketController) ResolveTicket(s *Session, id uint64) (*entity.SupportTicket, error) {
	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Ticket resolve denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	ticket, err := s.Workspace.Tickets.Update(id, func(t entity.SupportTicket) (entity.SupportTicket, error) {
		if t.Status == entity.TicketResolved {
			return t, fmt.Errorf("ticket %d already resolved: %w", id, ErrInvalidTransition)
		}

		t.Status = entity.TicketResolved
		return t, nil
	})
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			c.deps.Logger.Warn("Ticket not found", slog.Uint64("id", id))
			return nil, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
		}

		c.deps.Logger.Warn("Error resolving ticket", slog.String("error", err.Error()))
		return nil, err
	}

	c.deps.recordActivity(s, entity.ActivityTicket, fmt.Sprintf("Ticket resolved: %s", ticket.Title))

	return &ticket, nil
}
