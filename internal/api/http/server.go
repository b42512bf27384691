package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adamanr/workflow_portal/internal/controllers"
	"github.com/adamanr/workflow_portal/internal/timer"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

type Server struct {
	deps        *controllers.Dependens
	Controllers *controllers.Controllers
}

func NewServer(deps *controllers.Dependens, ctrls *controllers.Controllers) *Server {
	return &Server{
		deps:        deps,
		Controllers: ctrls,
	}
}

type sessionKey struct{}

func sessionFrom(ctx context.Context) *controllers.Session {
	s, _ := ctx.Value(sessionKey{}).(*controllers.Session)
	return s
}

// HandlerFromMux mounts the API under /api/v1 on r.
func HandlerFromMux(s *Server, r chi.Router) http.Handler {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.AuthLogin)
		r.Get("/badges/{status}", s.GetBadge)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Post("/auth/logout", s.AuthLogout)
			r.Get("/me", s.GetMe)
			r.Get("/dashboard", s.GetDashboard)

			r.Get("/tasks", s.GetTasks)
			r.Post("/tasks", s.CreateTask)
			r.Get("/tasks/{id}", s.GetTask)
			r.Patch("/tasks/{id}", s.UpdateTask)

			r.Get("/leaves", s.GetLeaves)
			r.Post("/leaves", s.SubmitLeave)
			r.Get("/leaves/{id}", s.GetLeave)
			r.Post("/leaves/{id}/approve", s.ApproveLeave)
			r.Post("/leaves/{id}/reject", s.RejectLeave)

			r.Get("/tickets", s.GetTickets)
			r.Post("/tickets", s.SubmitTicket)
			r.Get("/tickets/{id}", s.GetTicket)
			r.Post("/tickets/{id}/resolve", s.ResolveTicket)

			r.Get("/holidays", s.GetHolidays)
			r.Post("/holidays", s.CreateHoliday)

			r.Get("/payslips", s.GetPayslips)
			r.Post("/payslips/upload", s.UploadPayslips)
			r.Post("/payslips/{id}/send", s.SendPayslip)

			r.Get("/attendance", s.GetAttendance)
			r.Post("/attendance/check-in", s.CheckIn)
			r.Post("/attendance/check-out", s.CheckOut)
			r.Post("/attendance/reset", s.ResetAttendance)

			r.Get("/departments", s.GetDepartments)
			r.Post("/departments", s.CreateDepartment)
			r.Get("/users", s.GetUsers)
			r.Post("/users", s.CreateUser)
			r.Get("/settings", s.GetSettings)
			r.Put("/settings", s.UpdateSettings)
			r.Get("/overview", s.GetOverview)
			r.Get("/alerts", s.GetAlerts)
			r.Get("/activities", s.GetActivities)

			r.Get("/reports/{kind}", s.GetReport)
		})
	})

	return r
}

// requireSession resolves the bearer token to a session and stores it in the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.deps.Logger.Warn("Authorization header missing", slog.String("path", r.URL.Path))
			s.httpResponse(w, http.StatusUnauthorized, map[string]string{"error": controllers.ErrUnauthorized.Error()}, "error")
			return
		}

		session, err := s.Controllers.AuthController.Authenticate(r.Context(), authHeader)
		if err != nil {
			s.httpError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
	})
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	var id uint64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		s.deps.Logger.Warn("Invalid id parameter", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid format for parameter id"}, "error")
		return 0, false
	}

	return id, true
}

// queryFlag reads an optional boolean query parameter, false when absent.
func (s *Server) queryFlag(w http.ResponseWriter, r *http.Request, name string) (bool, bool) {
	var flag bool
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &flag); err != nil {
		s.deps.Logger.Warn("Invalid query parameter", slog.String("name", name), slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid format for parameter " + name}, "error")
		return false, false
	}

	return flag, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.deps.Logger.Warn("Error decoding request body", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"}, "error")
		return false
	}

	return true
}

// httpError maps controller errors onto status codes.
func (s *Server) httpError(w http.ResponseWriter, err error) {
	var verr *controllers.ValidationError

	switch {
	case errors.As(err, &verr):
		s.httpResponse(w, http.StatusBadRequest, map[string]any{
			"error":  controllers.ErrValidation.Error(),
			"fields": verr.Fields,
		}, "error")
	case errors.Is(err, controllers.ErrInvalidCredentials):
		s.httpResponse(w, http.StatusUnauthorized, map[string]string{"error": controllers.ErrInvalidCredentials.Error()}, "error")
	case errors.Is(err, controllers.ErrUnauthorized):
		s.httpResponse(w, http.StatusUnauthorized, map[string]string{"error": controllers.ErrUnauthorized.Error()}, "error")
	case errors.Is(err, controllers.ErrForbidden):
		s.httpResponse(w, http.StatusForbidden, map[string]string{"error": controllers.ErrForbidden.Error()}, "error")
	case errors.Is(err, controllers.ErrNotFound):
		s.httpResponse(w, http.StatusNotFound, map[string]string{"error": err.Error()}, "error")
	case errors.Is(err, controllers.ErrInvalidTransition),
		errors.Is(err, controllers.ErrConflict),
		errors.Is(err, timer.ErrSessionActive),
		errors.Is(err, timer.ErrSessionInactive):
		s.httpResponse(w, http.StatusConflict, map[string]string{"error": err.Error()}, "error")
	default:
		s.deps.Logger.Error("Unhandled error", slog.String("error", err.Error()))
		s.httpResponse(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"}, "error")
	}
}

func (s *Server) httpResponse(w http.ResponseWriter, status int, data any, respType string) {
	resp := map[string]any{
		"status": status,
		"type":   respType,
		"data":   data,
	}

	respData, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		s.deps.Logger.Error("Error marshaling response", slog.String("error", marshalErr.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(respData); err != nil {
		s.deps.Logger.Error("Error writing response", slog.String("error", err.Error()))
	}
}
