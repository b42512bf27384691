package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adamanr/workflow_portal/internal/controllers"
	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/adamanr/workflow_portal/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// AuthLogin authenticates a user and returns a JWT token.
func (s *Server) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	session, err := s.Controllers.AuthController.Login(r.Context(), &req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, entity.LoginResponse{
		AccessToken: session.Token,
		ExpiresIn:   int64(session.ExpiresAt.Sub(s.deps.Clock.Now()).Seconds()),
		Identity:    session.Identity,
		View:        session.View().String(),
	}, "success")
}

// AuthLogout revokes the token of the calling session.
func (s *Server) AuthLogout(w http.ResponseWriter, r *http.Request) {
	s.Controllers.AuthController.Logout(r.Context(), sessionFrom(r.Context()))

	s.httpResponse(w, http.StatusOK, map[string]string{"message": "Logged out"}, "success")
}

func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())

	s.httpResponse(w, http.StatusOK, map[string]any{
		"identity":   session.Identity,
		"view":       session.View().String(),
		"role":       view.Badge{Label: string(session.Identity.Role), Category: view.ClassifyRole(string(session.Identity.Role))},
		"privileged": session.Privileged(),
	}, "success")
}

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.Controllers.DashboardController.Build(sessionFrom(r.Context()))
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, dashboard, "success")
}

func (s *Server) GetBadge(w http.ResponseWriter, r *http.Request) {
	s.httpResponse(w, http.StatusOK, view.StatusBadge(chi.URLParam(r, "status")), "success")
}

func (s *Server) GetTasks(w http.ResponseWriter, r *http.Request) {
	s.httpResponse(w, http.StatusOK, s.Controllers.TaskController.GetTasks(sessionFrom(r.Context())), "success")
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTaskRequest
	if !s.decode(w, r, &req) {
		return
	}

	task, err := s.Controllers.TaskController.CreateTask(sessionFrom(r.Context()), req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, task, "success")
}

func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	task, err := s.Controllers.TaskController.GetTask(sessionFrom(r.Context()), id)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, task, "success")
}

func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req entity.UpdateTaskRequest
	if !s.decode(w, r, &req) {
		return
	}

	task, err := s.Controllers.TaskController.UpdateTaskStatus(sessionFrom(r.Context()), id, req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, task, "success")
}

// GetLeaves lists the caller's requests, or all of them with ?all=true.
func (s *Server) GetLeaves(w http.ResponseWriter, r *http.Request) {
	all, ok := s.queryFlag(w, r, "all")
	if !ok {
		return
	}

	leaves, err := s.Controllers.LeaveController.GetLeaves(sessionFrom(r.Context()), all)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, leaves, "success")
}

func (s *Server) GetLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	leave, err := s.Controllers.LeaveController.GetLeave(sessionFrom(r.Context()), id)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, leave, "success")
}

func (s *Server) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateLeaveRequest
	if !s.decode(w, r, &req) {
		return
	}

	leave, err := s.Controllers.LeaveController.SubmitLeave(sessionFrom(r.Context()), req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, leave, "success")
}

func (s *Server) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	leave, err := s.Controllers.LeaveController.ApproveLeave(sessionFrom(r.Context()), id)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, leave, "success")
}

func (s *Server) RejectLeave(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	leave, err := s.Controllers.LeaveController.RejectLeave(sessionFrom(r.Context()), id)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, leave, "success")
}

func (s *Server) GetTickets(w http.ResponseWriter, r *http.Request) {
	all, ok := s.queryFlag(w, r, "all")
	if !ok {
		return
	}

	tickets, err := s.Controllers.TicketController.GetTickets(sessionFrom(r.Context()), all)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, tickets, "success")
}

func (s *Server) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	ticket, err := s.Controllers.TicketController.GetTicket(sessionFrom(r.Context()), id)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, ticket, "success")
}

func (s *Server) SubmitTicket(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateTicketRequest
	if !s.decode(w, r, &req) {
		return
	}

	ticket, err := s.Controllers.TicketController.SubmitTicket(sessionFrom(r.Context()), req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, ticket, "success")
}

func (s *Server) ResolveTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	ticket, err := s.Controllers.TicketController.ResolveTicket(sessionFrom(r.Context()), id)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, ticket, "success")
}

func (s *Server) GetHolidays(w http.ResponseWriter, r *http.Request) {
	s.httpResponse(w, http.StatusOK, s.Controllers.HolidayController.GetHolidays(sessionFrom(r.Context())), "success")
}

func (s *Server) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateHolidayRequest
	if !s.decode(w, r, &req) {
		return
	}

	holiday, err := s.Controllers.HolidayController.CreateHoliday(sessionFrom(r.Context()), req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, holiday, "success")
}

func (s *Server) GetPayslips(w http.ResponseWriter, r *http.Request) {
	all, ok := s.queryFlag(w, r, "all")
	if !ok {
		return
	}

	payslips, err := s.Controllers.PayslipController.GetPayslips(sessionFrom(r.Context()), all)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, payslips, "success")
}

func (s *Server) UploadPayslips(w http.ResponseWriter, r *http.Request) {
	var req entity.UploadPayslipsRequest
	if !s.decode(w, r, &req) {
		return
	}

	payslips, err := s.Controllers.PayslipController.UploadPayslips(sessionFrom(r.Context()), req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, payslips, "success")
}

func (s *Server) SendPayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	payslip, err := s.Controllers.PayslipController.SendPayslip(sessionFrom(r.Context()), id)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, payslip, "success")
}

func (s *Server) GetAttendance(w http.ResponseWriter, r *http.Request) {
	s.httpResponse(w, http.StatusOK, s.Controllers.AttendanceController.GetAttendance(sessionFrom(r.Context())), "success")
}

func (s *Server) CheckIn(w http.ResponseWriter, r *http.Request) {
	attendance, err := s.Controllers.AttendanceController.CheckIn(sessionFrom(r.Context()))
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, attendance, "success")
}

func (s *Server) CheckOut(w http.ResponseWriter, r *http.Request) {
	attendance, err := s.Controllers.AttendanceController.CheckOut(sessionFrom(r.Context()))
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, attendance, "success")
}

func (s *Server) ResetAttendance(w http.ResponseWriter, r *http.Request) {
	s.httpResponse(w, http.StatusOK, s.Controllers.AttendanceController.Reset(sessionFrom(r.Context())), "success")
}

func (s *Server) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.Controllers.AdminController.GetDepartments(sessionFrom(r.Context()))
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, departments, "success")
}

func (s *Server) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateDepartmentRequest
	if !s.decode(w, r, &req) {
		return
	}

	department, err := s.Controllers.AdminController.CreateDepartment(sessionFrom(r.Context()), req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, department, "success")
}

func (s *Server) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Controllers.AdminController.GetUsers(sessionFrom(r.Context()))
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, users, "success")
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.Controllers.AdminController.CreateUser(sessionFrom(r.Context()), req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusCreated, user, "success")
}

func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Controllers.AdminController.GetSettings(sessionFrom(r.Context()))
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, settings, "success")
}

func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req entity.Settings
	if !s.decode(w, r, &req) {
		return
	}

	settings, err := s.Controllers.AdminController.UpdateSettings(sessionFrom(r.Context()), req)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, settings, "success")
}

func (s *Server) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.Controllers.AdminController.GetOverview(sessionFrom(r.Context()))
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, overview, "success")
}

func (s *Server) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.Controllers.AdminController.GetAlerts(sessionFrom(r.Context()))
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, alerts, "success")
}

func (s *Server) GetActivities(w http.ResponseWriter, r *http.Request) {
	var limit int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		s.deps.Logger.Warn("Invalid limit parameter", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid format for parameter limit"}, "error")
		return
	}

	activities, err := s.Controllers.AdminController.GetActivities(sessionFrom(r.Context()), limit)
	if err != nil {
		s.httpError(w, err)
		return
	}

	s.httpResponse(w, http.StatusOK, activities, "success")
}

// GetReport streams an xlsx workbook instead of the JSON envelope.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	kind := controllers.ReportKind(chi.URLParam(r, "kind"))

	buf, err := s.Controllers.ReportController.Export(sessionFrom(r.Context()), kind)
	if err != nil {
		s.httpError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", kind, s.deps.Clock.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", controllers.ReportContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	w.WriteHeader(http.StatusOK)

	if _, err = buf.WriteTo(w); err != nil {
		s.deps.Logger.Error("Error writing report", slog.String("error", err.Error()))
	}
}
