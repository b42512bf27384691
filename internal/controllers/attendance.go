package controllers

import (
	"log/slog"

	"github.com/adamanr/workflow_portal/internal/entity"
)

type AttendanceController struct {
	deps *Dependens
}

func NewAttendanceController(deps *Dependens) *AttendanceController {
	return &AttendanceController{
		deps: deps,
	}
}

func (c *AttendanceController) CheckIn(s *Session) (*entity.Attendance, error) {
	if err := s.Timer.Start(); err != nil {
		c.deps.Logger.Warn("Check-in rejected", slog.String("email", s.Identity.Email), slog.String("error", err.Error()))
		return nil, err
	}

	c.deps.Logger.Info("Checked in", slog.String("email", s.Identity.Email))
	return c.GetAttendance(s), nil
}

func (c *AttendanceController) CheckOut(s *Session) (*entity.Attendance, error) {
	if err := s.Timer.Stop(); err != nil {
		c.deps.Logger.Warn("Check-out rejected", slog.String("email", s.Identity.Email), slog.String("error", err.Error()))
		return nil, err
	}

	c.deps.Logger.Info("Checked out", slog.String("email", s.Identity.Email), slog.String("elapsed", s.Timer.Display()))
	return c.GetAttendance(s), nil
}

func (c *AttendanceController) Reset(s *Session) *entity.Attendance {
	s.Timer.Reset()
	return c.GetAttendance(s)
}

func (c *AttendanceController) GetAttendance(s *Session) *entity.Attendance {
	state := s.Timer.State()

	att := &entity.Attendance{
		CheckedIn:      state.Active,
		ElapsedSeconds: int64(state.Elapsed.Seconds()),
		Elapsed:        state.Display,
	}
	if state.Active {
		since := state.Since
		att.Since = &since
	}
	if !state.LastAction.IsZero() {
		last := state.LastAction
		att.LastAction = &last
	}

	return att
}
