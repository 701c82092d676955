// Package router wires every HTTP route of the API onto a chi router.
//
// Route table:
//
//	POST   /api/registrations                 → public form submission
//	POST   /api/admin/login                   → admin login, returns token
//	GET    /api/admin/registrations           → list (token)
//	GET    /api/admin/registrations/count     → count (token)
//	DELETE /api/admin/registrations/{id}      → delete (token)
//	GET    /healthz                           → store reachability
//	GET    /metrics                           → Prometheus
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bootcamp-landing/registrations-api/internal/http/handlers/admin"
	"github.com/bootcamp-landing/registrations-api/internal/http/handlers/registration"
	"github.com/bootcamp-landing/registrations-api/internal/http/middleware"
	"github.com/bootcamp-landing/registrations-api/internal/utils/response"
)

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger        *slog.Logger
	Registrations registration.Submitter
	Gate          admin.Authenticator
	Admin         admin.Querier
	Store         Pinger
	// Metrics serves /metrics when non-nil.
	Metrics http.Handler
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", health(d.Store, d.Logger))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/registrations", registration.New(d.Registrations, d.Logger))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", admin.Login(d.Gate, d.Logger))
			r.Get("/registrations", admin.List(d.Admin, d.Logger))
			r.Get("/registrations/count", admin.Count(d.Admin, d.Logger))
			r.Delete("/registrations/{id}", admin.Delete(d.Admin, d.Logger))
		})
	})

	return r
}

func health(store Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.ErrorContext(ctx, "health check failed", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
