package messageshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timeoff/internal/messaging"
	"timeoff/internal/transport/http/api"
	"timeoff/internal/transport/http/middleware"
)

type Handler struct {
	Service *messaging.Service
}

func NewHandler(service *messaging.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAdmin).Post("/messages", h.handleSend)
	r.With(middleware.RequireAuth).Get("/messages", h.handleList)
	r.With(middleware.RequireAuth).Put("/messages/{messageID}/read", h.handleMarkRead)
}

type sendRequest struct {
	RecipientID string `json:"recipientId"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload sendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	message, err := h.Service.Send(r.Context(), ident, payload.RecipientID, payload.Subject, payload.Message, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, messaging.ErrMissingFields):
			api.Fail(w, http.StatusBadRequest, api.CodeValidation, "missing required fields", middleware.GetRequestID(r.Context()))
		case errors.Is(err, messaging.ErrRecipientNotFound):
			api.Fail(w, http.StatusNotFound, api.CodeNotFound, "recipient not found", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to send message", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, map[string]any{"message": message}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	messages, err := h.Service.ListFor(r.Context(), ident.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to list messages", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"messages": messages}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	messageID := chi.URLParam(r, "messageID")
	if err := h.Service.MarkRead(r.Context(), ident.ID, messageID); err != nil {
		switch {
		case errors.Is(err, messaging.ErrNotFound):
			api.Fail(w, http.StatusNotFound, api.CodeNotFound, "message not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, messaging.ErrNotRecipient):
			api.Fail(w, http.StatusForbidden, api.CodeForbidden, "not authorized", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to update message", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, map[string]string{"status": "read"}, middleware.GetRequestID(r.Context()))
}
