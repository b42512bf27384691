package controllers

import (
	"context"
	"log/slog"
	"time"

	"github.com/adamanr/workflow_portal/internal/config"
	"github.com/adamanr/workflow_portal/internal/database"
	"github.com/adamanr/workflow_portal/internal/metrics"
	"github.com/adamanr/workflow_portal/internal/timer"
	"github.com/redis/go-redis/v9"
)

type Controllers struct {
	AuthController       *AuthController
	TaskController       *TaskController
	LeaveController      *LeaveController
	TicketController     *TicketController
	HolidayController    *HolidayController
	PayslipController    *PayslipController
	AdminController      *AdminController
	AttendanceController *AttendanceController
	DashboardController  *DashboardController
	ReportController     *ReportController
}

// TokenStore is the subset of the redis client used to track live tokens.
// database.MemoryTokens implements it for single-process deployments.
type TokenStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Dependens struct {
	Tokens     TokenStore
	Workspaces *database.Workspaces
	Clock      timer.Clock
	Scheduler  timer.Scheduler
	Validator  *Validator
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	Config     *config.Config
}

func NewControllers(deps *Dependens) *Controllers {
	ctrls := &Controllers{
		AuthController:       NewAuthController(deps),
		TaskController:       NewTaskController(deps),
		LeaveController:      NewLeaveController(deps),
		TicketController:     NewTicketController(deps),
		HolidayController:    NewHolidayController(deps),
		PayslipController:    NewPayslipController(deps),
		AdminController:      NewAdminController(deps),
		AttendanceController: NewAttendanceController(deps),
		ReportController:     NewReportController(deps),
	}
	ctrls.DashboardController = NewDashboardController(deps, ctrls.AdminController, ctrls.LeaveController, ctrls.TicketController, ctrls.AttendanceController)

	return ctrls
}
