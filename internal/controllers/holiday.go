package controllers

import (
	"fmt"
	"log/slog"

	"github.com/adamanr/workflow_portal/internal/entity"
)

type HolidayController struct {
	deps *Dependens
}

func NewHolidayController(deps *Dependens) *HolidayController {
	return &HolidayController{
		deps: deps,
	}
}

func (c *HolidayController) GetHolidays(s *Session) []entity.Holiday {
	return s.Workspace.Holidays.List(nil)
}

func (c *HolidayController) CreateHoliday(s *Session, req entity.CreateHolidayRequest) (*entity.Holiday, error) {
	if err := s.Require(entity.RoleHR, entity.RoleAdmin); err != nil {
		c.deps.Logger.Warn("Holiday create denied", slog.String("email", s.Identity.Email))
		return nil, err
	}

	if err := c.deps.Validator.Struct(req); err != nil {
		c.deps.Logger.Warn("Invalid holiday", slog.String("error", err.Error()))
		return nil, err
	}

	holiday := s.Workspace.Holidays.Insert(func(id uint64) entity.Holiday {
		return entity.Holiday{ID: id, Name: req.Name, Date: req.Date, Type: req.Type}
	})

	c.deps.recordActivity(s, entity.ActivityHoliday, fmt.Sprintf("Holiday added: %s", holiday.Name))

	return &holiday, nil
}
