package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	CookieName     string
	Verifier       middleware.TokenVerifier
	Denylist       middleware.RevocationChecker
	LoginLimiter   *middleware.RateLimiter
	Log            logger.Logger
}

type Handlers struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Leads        *LeadHandler
	Interactions *InteractionHandler
	Clients      *ClientHandler
	Activities   *ActivityHandler
	Files        *FileHandler
	Dashboard    *DashboardHandler
	Health       *HealthHandler
}

func NewRouter(cfg RouterConfig, h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.AccessLog(cfg.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	authn := middleware.Authenticate(cfg.Verifier, cfg.Denylist, cfg.CookieName, cfg.Log)
	can := middleware.RequirePermission

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(chimw.Timeout(cfg.RequestTimeout))
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.With(limit(cfg.LoginLimiter)).Post("/login", h.Auth.Login)
			r.With(authn).Post("/logout", h.Auth.Logout)
			r.With(authn).Get("/me", h.Auth.Me)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Get("/options", Options)
			r.With(can(entity.PermDashboardView)).Get("/dashboard", h.Dashboard.Summary)

			r.Route("/users", func(r chi.Router) {
				r.With(can(entity.PermUsersManage)).Get("/", h.Users.List)
				r.With(can(entity.PermUsersManage)).Post("/", h.Users.Create)
				r.Get("/{id}", h.Users.Get)
				r.Put("/{id}", h.Users.Update)
				r.With(can(entity.PermUsersManage)).Delete("/{id}", h.Users.Delete)
			})

			r.Route("/leads", func(r chi.Router) {
				r.With(can(entity.PermLeadsRead)).Get("/", h.Leads.List)
				r.With(can(entity.PermLeadsWrite)).Post("/", h.Leads.Create)
				r.Route("/{leadId}", func(r chi.Router) {
					r.With(can(entity.PermLeadsRead)).Get("/", h.Leads.Get)
					r.With(can(entity.PermLeadsWrite)).Put("/", h.Leads.Update)
					r.With(can(entity.PermLeadsDelete)).Delete("/", h.Leads.Delete)
					r.With(can(entity.PermLeadsWrite)).Post("/convert", h.Leads.Convert)
					r.With(can(entity.PermLeadsRead)).Get("/score", h.Leads.GetScore)
					r.With(can(entity.PermScoreOverride)).Put("/score", h.Leads.OverrideScore)
				})
			})

			r.Route("/interactions/{leadId}", func(r chi.Router) {
				r.With(can(entity.PermLeadsRead)).Get("/", h.Interactions.List)
				r.With(can(entity.PermLeadsWrite)).Post("/", h.Interactions.Create)
			})

			r.Route("/clients", func(r chi.Router) {
				r.With(can(entity.PermClientsRead)).Get("/", h.Clients.List)
				r.With(can(entity.PermClientsWrite)).Post("/", h.Clients.Create)
				r.With(can(entity.PermClientsRead)).Get("/{id}", h.Clients.Get)
				r.With(can(entity.PermClientsWrite)).Put("/{id}", h.Clients.Update)
				r.With(can(entity.PermClientsDelete)).Delete("/{id}", h.Clients.Delete)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.With(can(entity.PermClientsRead)).Get("/", h.Clients.ListContacts)
				r.With(can(entity.PermClientsWrite)).Post("/", h.Clients.CreateContact)
				r.With(can(entity.PermClientsRead)).Get("/{id}", h.Clients.GetContact)
				r.With(can(entity.PermClientsWrite)).Put("/{id}", h.Clients.UpdateContact)
				r.With(can(entity.PermClientsDelete)).Delete("/{id}", h.Clients.DeleteContact)
			})

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", h.Activities.List)
				r.With(can(entity.PermActivitiesWrite)).Post("/", h.Activities.Create)
				r.Get("/{id}", h.Activities.Get)
				r.With(can(entity.PermActivitiesWrite)).Put("/{id}", h.Activities.Update)
				r.With(can(entity.PermActivitiesWrite)).Delete("/{id}", h.Activities.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Activities.ListTasks)
				r.With(can(entity.PermTasksWrite)).Post("/", h.Activities.CreateTask)
				r.Get("/{id}", h.Activities.GetTask)
				r.With(can(entity.PermTasksWrite)).Put("/{id}", h.Activities.UpdateTask)
				r.With(can(entity.PermTasksDelete)).Delete("/{id}", h.Activities.DeleteTask)
			})

			r.Route("/files", func(r chi.Router) {
				r.Get("/", h.Files.List)
				r.With(can(entity.PermFilesWrite)).Post("/", h.Files.Upload)
				r.Get("/{id}", h.Files.Get)
				r.Get("/{id}/download", h.Files.Download)
				r.With(can(entity.PermFilesDelete)).Delete("/{id}", h.Files.Delete)
			})
		})
	})

	return r
}

func limit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}
