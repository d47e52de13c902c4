package leavehandler

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
	r.Post("/time-off-requests", h.handleSubmit)
	r.With(middleware.RequireAuth).Get("/time-off-requests", h.handleList)
	r.Get("/time-off-requests/by-name/{firstName}/{lastName}", h.handleListByName)
	r.Get("/time-off-requests/all", h.handleListAll)
	r.With(middleware.RequireManagerOrAdmin).Put("/time-off-requests/{requestID}", h.handleDecide)
	r.With(middleware.RequireManagerOrAdmin).Delete("/time-off-requests/{requestID}", h.handleDelete)
}

// handleSubmit is the public intake form: no session required by design.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload leave.SubmitParams
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.Submit(r.Context(), payload, time.Now())
	if err != nil {
		if errors.Is(err, leave.ErrMissingFields) {
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "missing required fields", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to submit request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]any{"request": request}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	requests, err := h.Service.ListFor(r.Context(), ident)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"requests": requests}, middleware.GetRequestID(r.Context()))
}

// handleListByName lets submitters check status without logging in.
func (h *Handler) handleListByName(w http.ResponseWriter, r *http.Request) {
	firstName := chi.URLParam(r, "firstName")
	lastName := chi.URLParam(r, "lastName")
	requests, err := h.Service.ListByName(r.Context(), firstName, lastName)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"requests": requests}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListAll(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"requests": requests}, middleware.GetRequestID(r.Context()))
}

type decisionRequest struct {
	Status   string  `json:"status"`
	Comments *string `json:"comments"`
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	requestID := chi.URLParam(r, "requestID")
	request, err := h.Service.Decide(r.Context(), ident, requestID, payload.Status, payload.Comments, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrInvalidStatus):
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid status", middleware.GetRequestID(r.Context()))
		case errors.Is(err, leave.ErrNotFound):
			api.Fail(w, http.StatusNotFound, api.CodeNotFound, "request not found", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to update request", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, map[string]any{"request": request}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	if err := h.Service.Delete(r.Context(), requestID); err != nil {
		if errors.Is(err, leave.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, api.CodeNotFound, "request not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to delete request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
