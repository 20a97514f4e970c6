package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beggy/beggy-backend/api/controllers"
	"github.com/beggy/beggy-backend/api/middleware"
	"github.com/beggy/beggy-backend/internal/auth"
	"github.com/beggy/beggy-backend/internal/containers"
	"github.com/beggy/beggy-backend/internal/items"
	"github.com/beggy/beggy-backend/internal/users"
	"github.com/beggy/beggy-backend/pkg/auth/session"
	"github.com/beggy/beggy-backend/pkg/config"
	"github.com/beggy/beggy-backend/pkg/db"
	"github.com/beggy/beggy-backend/pkg/enums"
	"github.com/beggy/beggy-backend/pkg/logger"
	"github.com/beggy/beggy-backend/pkg/metrics"
	"github.com/beggy/beggy-backend/pkg/redis"
)

// Services groups the domain services mounted by the router.
type Services struct {
	Auth       auth.Service
	Register   auth.RegisterService
	Users      users.Service
	Items      items.Service
	Containers containers.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager session.AccessSessionChecker,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	// redis-backed middleware is skipped when no client is wired (tests, sqlite dev runs)
	idempotent := passthrough
	loginLimit, registerLimit := passthrough, passthrough
	var redisPinger redis.Pinger
	if redisClient != nil {
		idempotent = middleware.Idempotency(redisClient, logg)
		loginLimit = middleware.AuthRateLimit(middleware.LoginRateLimitPolicy(cfg.AuthRateLimit), redisClient, logg)
		registerLimit = middleware.AuthRateLimit(middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit), redisClient, logg)
		redisPinger = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(loginLimit).Post("/login", controllers.AuthLogin(svc.Auth, logg))
		r.With(registerLimit, idempotent).Post("/register", controllers.AuthRegister(svc.Register, svc.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svc.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svc.Auth, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RateLimit(cfg.RateLimit, logg))

		r.Get("/me", controllers.MeGet(svc.Users, logg))
		r.Patch("/me", controllers.MeUpdate(svc.Users, logg))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ItemList(svc.Items, logg))
			r.With(idempotent).Post("/", controllers.ItemCreate(svc.Items, logg))
			r.Get("/{itemId}", controllers.ItemGet(svc.Items, logg))
			r.Patch("/{itemId}", controllers.ItemUpdate(svc.Items, logg))
			r.Delete("/{itemId}", controllers.ItemDelete(svc.Items, logg))
		})

		r.Route("/bags", containerRoutes(svc.Containers, enums.ContainerKindBag, idempotent, logg))
		r.Route("/suitcases", containerRoutes(svc.Containers, enums.ContainerKindSuitcase, idempotent, logg))

		r.Post("/capacity/evaluate", controllers.CapacityEvaluate(logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))
		r.Use(middleware.RateLimit(cfg.RateLimit, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(svc.Users, logg))
			r.Get("/{userId}", controllers.AdminUserGet(svc.Users, logg))
			r.Patch("/{userId}/role", controllers.AdminUserUpdateRole(svc.Users, logg))
			r.Patch("/{userId}/status", controllers.AdminUserUpdateStatus(svc.Users, logg))
		})
	})

	return r
}

func containerRoutes(svc containers.Service, kind enums.ContainerKind, idempotent func(http.Handler) http.Handler, logg *logger.Logger) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", controllers.ContainerList(svc, kind, logg))
		r.With(idempotent).Post("/", controllers.ContainerCreate(svc, kind, logg))
		r.Get("/{containerId}", controllers.ContainerGet(svc, kind, logg))
		r.Patch("/{containerId}", controllers.ContainerUpdate(svc, kind, logg))
		r.Delete("/{containerId}", controllers.ContainerDelete(svc, kind, logg))
		r.With(idempotent).Post("/{containerId}/items/{itemId}", controllers.ContainerAddItem(svc, kind, logg))
		r.Delete("/{containerId}/items/{itemId}", controllers.ContainerRemoveItem(svc, kind, logg))
	}
}

func passthrough(next http.Handler) http.Handler {
	return next
}
