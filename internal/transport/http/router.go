// Package httptransport assembles the HTTP surface: middleware chain, route
// groups, and role gating. Handlers live with their features; this package
// only wires them together.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/secure"

	"presales/internal/audit"
	authhandler "presales/internal/auth/handler"
	masterhandler "presales/internal/masters/handler"
	"presales/internal/platform/config"
	"presales/internal/platform/health"
	"presales/internal/platform/middleware"
)

// Deps carries everything the router needs. Metrics may be nil in tests.
type Deps struct {
	Config  *config.Config
	Logger  *slog.Logger
	Auth    *authhandler.Handler
	Masters *masterhandler.Handler
	Audit   *audit.Handler
	Tokens  middleware.TokenValidator
	Health  *health.Handler
	Metrics *middleware.HTTPMetrics
}

// NewRouter wires all endpoints with the shared middleware chain.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        deps.Config.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !deps.Config.IsProduction(),
	})

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(deps.Config.RequestTimeout))
	r.Use(secureMiddleware.Handler)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Instrument)
	}

	deps.Health.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		// Login is the only unauthenticated endpoint, and the only one
		// worth brute-forcing, so it gets its own rate limit.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(deps.Config.LoginRateLimit, time.Minute))
			deps.Auth.MountPublic(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(deps.Tokens, deps.Logger))

			deps.Auth.MountProtected(r)
			deps.Masters.MountRead(r)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMasterAdmin(deps.Logger))
				deps.Masters.MountAdmin(r)
				deps.Audit.Mount(r)
			})
		})
	})

	return r
}
