package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"timeoff/internal/identity"
	"timeoff/internal/transport/http/api"
	"timeoff/internal/transport/http/middleware"
)

type Handler struct {
	Identity   *identity.Service
	Sessions   *identity.SessionStore
	CookieName string
}

func NewHandler(service *identity.Service, sessions *identity.SessionStore, cookieName string) *Handler {
	return &Handler{Identity: service, Sessions: sessions, CookieName: cookieName}
}

func (h *Handler) RegisterRoutes(r chi.Router, loginLimiter *middleware.RateLimiter) {
	r.With(loginLimiter.Middleware).Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Get("/user", h.HandleCurrentUser)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, api.CodeValidation, "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	ident, err := h.Identity.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "invalid credentials", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "login failed", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := h.Sessions.Create(ident)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, api.CodeInternal, "failed to start session", middleware.GetRequestID(r.Context()))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.Sessions.TTL()),
	})
	api.Success(w, map[string]any{"user": ident}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.CookieName); err == nil && cookie.Value != "" {
		h.Sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, api.CodeUnauthenticated, "not authenticated", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"user": ident}, middleware.GetRequestID(r.Context()))
}
