package http

import (
	"net/http"

	"github.com/dialtone-dev/dialtone/internal/config"
	"github.com/dialtone-dev/dialtone/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	Identity *service.Identity
	Signals  *service.SignalService
	cfg      config.Config
}

func NewHandler(identity *service.Identity, signals *service.SignalService, cfg config.Config) *Handler {
	return &Handler{
		Identity: identity,
		Signals:  signals,
		cfg:      cfg,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/logged-in-users", h.handleLoggedInUsers)

	r.Get("/ws", h.ServeWS)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
