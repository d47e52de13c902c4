package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"timeoff/internal/identity"
	"timeoff/internal/leave"
	"timeoff/internal/messaging"
	"timeoff/internal/platform/config"
	"timeoff/internal/storage"
	authhandler "timeoff/internal/transport/http/handlers/auth"
	directoryhandler "timeoff/internal/transport/http/handlers/directory"
	leavehandler "timeoff/internal/transport/http/handlers/leave"
	messageshandler "timeoff/internal/transport/http/handlers/messages"
	ptohandler "timeoff/internal/transport/http/handlers/pto"
	reportshandler "timeoff/internal/transport/http/handlers/reports"
	"timeoff/internal/transport/http/middleware"
)

type App struct {
	Config   config.Config
	Store    storage.Store
	Sessions *identity.SessionStore
	Router   http.Handler
}

// New wires services, middleware, and routes onto one chi router. The
// caller owns the store; Close releases the session store.
func New(cfg config.Config, store storage.Store) *App {
	sessions := identity.NewSessionStore(cfg.SessionTTL)
	identityService := identity.NewService(store)
	leaveService := leave.NewService(store, cfg.PTOAnnualDays)
	messagingService := messaging.NewService(store)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Sessions(sessions, cfg.SessionCookie))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api", func(r chi.Router) {
		loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)
		authhandler.NewHandler(identityService, sessions, cfg.SessionCookie).RegisterRoutes(r, loginLimiter)
		leavehandler.NewHandler(leaveService).RegisterRoutes(r)
		ptohandler.NewHandler(leaveService).RegisterRoutes(r)
		directoryhandler.NewHandler(identityService).RegisterRoutes(r)
		messageshandler.NewHandler(messagingService).RegisterRoutes(r)
		reportshandler.NewHandler(leaveService).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, Store: store, Sessions: sessions, Router: router}
}

func (a *App) Close() {
	a.Sessions.Close()
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
