package ptohandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timeoff/internal/leave"
	"timeoff/internal/transport/http/api"
	"timeoff/internal/transport/http/middleware"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pto", func(r chi.Router) {
		r.With(middleware.RequireManager).Get("/balance", h.handleBalance)
		r.With(middleware.RequireManager).Post("/request", h.handleRequest)
	})
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	info, err := h.Service.Balance(r.Context(), ident.ID, time.Now())
	if err != nil {
		if errors.Is(err, leave.ErrManagerNotFound) {
			api.Fail(w, http.StatusNotFound, api.CodeNotFound, "manager not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to load balance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, info, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload leave.PTOParams
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.RequestPTO(r.Context(), ident, payload, time.Now())
	if err != nil {
		var insufficient *leave.InsufficientBalanceError
		switch {
		case errors.As(err, &insufficient):
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, insufficient.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrMissingFields):
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "missing required fields", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrInvalidDates):
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid date range", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrManagerNotFound):
			api.Fail(w, http.StatusNotFound, api.CodeNotFound, "manager not found", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to submit pto request", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, map[string]any{"request": request}, middleware.GetRequestID(r.Context()))
}
