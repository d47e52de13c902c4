package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timeoff/internal/identity"
	"timeoff/internal/transport/http/api"
	"timeoff/internal/transport/http/middleware"
)

type Handler struct {
	Service *identity.Service
}

func NewHandler(service *identity.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireManagerOrAdmin).Get("/employees", h.handleListEmployees)
	r.With(middleware.RequireManager).Post("/employees", h.handleCreateEmployee)
	r.With(middleware.RequireAdmin).Get("/users", h.handleListUsers)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"employees": employees}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload identity.NewEmployee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	employee, err := h.Service.CreateEmployee(r.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingFields):
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "missing required fields", middleware.GetRequestID(r.Context()))
		case errors.Is(err, identity.ErrUsernameTaken):
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "username already exists", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to create employee", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, map[string]any{"employee": employee}, middleware.GetRequestID(r.Context()))
}

// handleListUsers feeds the admin messaging screen: employees and
// managers only.
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.Directory(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to list users", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"users": users}, middleware.GetRequestID(r.Context()))
}
