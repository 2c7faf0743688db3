// Package httpapi is the HTTP boundary: routing, middleware and handlers.
// Handlers decode, validate, call a service and render; every error funnels
// through a single dispatcher so status codes and bodies stay uniform.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"boardhub.org/internal/board"
	"boardhub.org/internal/identity"
	"boardhub.org/internal/obs"
	"boardhub.org/internal/token"
)

// ReadyProbe reports backing-store readiness. A nil DB (memory store) is
// always ready.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Config wires the services and operational knobs into the API.
type Config struct {
	Identities *identity.Service
	Boards     *board.Service
	Tokens     *token.Service

	ReadyProbe ReadyProbe
	Version    string

	RateLimitPerSecond int
	RateLimitBurst     int
	CORSAllowedOrigins []string
	MaxRequestBodySize int64
}

// API is the HTTP layer.
type API struct {
	router     chi.Router
	identities *identity.Service
	boards     *board.Service
	tokens     *token.Service
	readyProbe ReadyProbe
	version    string
}

func New(cfg Config) *API {
	a := &API{
		identities: cfg.Identities,
		boards:     cfg.Boards,
		tokens:     cfg.Tokens,
		readyProbe: cfg.ReadyProbe,
		version:    cfg.Version,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(LoggingJSON)
	r.Use(SecurityHeaders)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}
	if cfg.MaxRequestBodySize > 0 {
		r.Use(MaxBodyBytes(cfg.MaxRequestBodySize))
	}

	r.Get("/health", a.Health)
	r.Get("/readyz", a.Ready)
	r.Handle("/metrics", obs.Handler())

	// The application routes answer both at the root and under /api/v1.
	a.mountRoutes(r)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", a.Health)
		a.mountRoutes(r)
	})

	a.router = r
	return a
}

func (a *API) mountRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", a.Register)
		r.Post("/login", a.Login)
		r.With(a.withAuth).Get("/me", a.Me)
	})

	r.Route("/resources", func(r chi.Router) {
		r.Use(a.withAuth)
		r.Post("/", a.CreateBoard)
		r.Get("/", a.ListBoards)
		r.Route("/{boardID}", func(r chi.Router) {
			r.Get("/", a.GetBoard)
			r.Patch("/", a.UpdateBoard)
			r.Delete("/", a.DeleteBoard)
			r.Post("/members", a.InviteMember)
			r.Patch("/members/{memberID}", a.UpdateMemberRole)
			r.Delete("/members/{memberID}", a.RemoveMember)
		})
	})
}

// Handler returns the instrumented root handler for the server.
func (a *API) Handler() http.Handler {
	return obs.Instrument(a.router)
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "OK"})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ready",
		"version": a.version,
	})
}
