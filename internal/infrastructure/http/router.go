package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/yusuufashraaf/TMS-backend/internal/domain"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/http/handlers"
	"github.com/yusuufashraaf/TMS-backend/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	TasksHandler    *handlers.TasksHandler
	HealthHandler   *handlers.HealthHandler
	LiveHandler     http.Handler // websocket endpoint, mounted at /ws
	RequireAuth     func(http.Handler) http.Handler
	Secure          func(http.Handler) http.Handler
	CORS            func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler
	Log             zerolog.Logger
	Metrics         bool // expose /metrics and collect request durations
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	if cfg.LiveHandler != nil {
		r.Handle("/ws", cfg.LiveHandler)
	}

	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimid.AllowContentType("application/json"))

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if cfg.IPRateLimit != nil {
					r.Use(cfg.IPRateLimit)
				}
				r.Post("/signup", cfg.AuthHandler.Signup)
				r.Post("/login", cfg.AuthHandler.Login)
			})
			r.Group(func(r chi.Router) {
				r.Use(cfg.RequireAuth)
				r.Post("/logout", cfg.AuthHandler.Logout)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(cfg.RequireAuth)
			r.With(requireAdmin).Get("/", cfg.UsersHandler.List)
			r.Get("/me", cfg.UsersHandler.Me)
			r.Get("/{id}", cfg.UsersHandler.Get)
			r.Patch("/{id}", cfg.UsersHandler.Update)
			r.With(requireAdmin).Delete("/{id}", cfg.UsersHandler.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Use(cfg.RequireAuth)
			r.With(requireAdmin).Post("/", cfg.ProjectsHandler.Create)
			r.Get("/", cfg.ProjectsHandler.List)
			r.Get("/{id}", cfg.ProjectsHandler.Get)
			r.Patch("/{id}", cfg.ProjectsHandler.Update)
			r.With(requireAdmin).Delete("/{id}", cfg.ProjectsHandler.Delete)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(cfg.RequireAuth)
			r.With(requireAdmin).Post("/", cfg.TasksHandler.Create)
			r.Get("/", cfg.TasksHandler.List)
			r.With(requireAdmin).Get("/stats", cfg.TasksHandler.Stats)
			r.Get("/{id}", cfg.TasksHandler.Get)
			r.Patch("/{id}", cfg.TasksHandler.Update)
			r.Delete("/{id}", cfg.TasksHandler.Delete)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
