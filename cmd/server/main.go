package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/modules/customers"
	"github.com/gadisewa/backend/modules/garages"
	"github.com/gadisewa/backend/modules/identity"
	"github.com/gadisewa/backend/modules/inventory"
	"github.com/gadisewa/backend/modules/workshop"
	"github.com/gadisewa/backend/pkg/config"
	"github.com/gadisewa/backend/pkg/httpserver"
	"github.com/gadisewa/backend/pkg/logger"
	"github.com/gadisewa/backend/pkg/metrics"
	"github.com/gadisewa/backend/pkg/pg"
	"github.com/gadisewa/backend/pkg/redis"
	"github.com/gadisewa/backend/pkg/tenant"
)

type appConfig struct {
	LogLevel  slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat logger.Format `env:"LOG_FORMAT" envDefault:"json"`

	HTTP   httpserver.Config
	PG     pg.Config
	Redis  redis.Config
	Tenant tenant.Config
	Auth   identity.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithLevel(cfg.LogLevel),
		logger.WithFormat(cfg.LogFormat),
		logger.WithAttr(logger.Component("server")),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx := context.Background()

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		log.ErrorContext(ctx, "postgres connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		log.ErrorContext(ctx, "migrations failed", logger.Error(err))
		os.Exit(1)
	}

	// The tenant cache degrades to per-process memory when Redis is not
	// reachable; resolution stays correct, only invalidation fan-out is lost.
	tenantCache := tenant.NewInMemoryCache()
	var readiness []func(context.Context) error
	readiness = append(readiness, pg.Healthcheck(pool))

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.WarnContext(ctx, "redis unavailable, using in-memory tenant cache", logger.Error(err))
	} else {
		defer redisClient.Close()
		tenantCache = tenant.NewRedisCache(redisClient, "gadisewa")
		readiness = append(readiness, redis.Healthcheck(redisClient))
	}

	garageRepo := garages.NewRepository(pool)
	garageSvc := garages.NewService(garageRepo, tenantCache, cfg.Tenant.ReservedSubdomains, log)
	directory := garages.NewDirectory(garageRepo)

	tokens := identity.NewTokenIssuer(cfg.Auth)
	identitySvc := identity.NewService(identity.NewRepository(pool), tokens, log)

	customerSvc := customers.NewService(pool, log)
	catalog := workshop.NewCatalog(pool, log)
	vehicles := workshop.NewVehicles(pool, log)
	categories := inventory.NewCategories(pool, log)
	suppliers := inventory.NewSuppliers(pool, log)
	parts := inventory.NewParts(pool, log)

	resolver := tenant.NewSubdomainResolver(cfg.Tenant)
	resolveTenant := tenant.Middleware(resolver, directory,
		tenant.WithCache(tenantCache),
		tenant.WithCacheTTL(cfg.Tenant.CacheTTL),
		tenant.WithSkipPaths("/health", "/metrics"),
	)

	identityHandler := identity.NewHandler(identitySvc, tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(resolveTenant)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, readiness...))
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Login and platform registration work on both surfaces; the
		// service scopes the lookup by the resolved tenant.
		r.Mount("/auth", identityHandler.AuthRouter())

		// Platform administration. Requests that resolved to a garage have
		// no business here.
		r.Group(func(r chi.Router) {
			r.Use(requirePlatform)
			r.Use(identity.Authenticator(tokens))
			r.Mount("/garages", garages.NewHandler(garageSvc).Router())
		})

		// Garage surface: everything below requires a resolved tenant and
		// a token pinned to it.
		r.Group(func(r chi.Router) {
			r.Use(tenant.RequireTenant(nil))
			r.Use(identity.Authenticator(tokens))

			r.Mount("/employees", identityHandler.EmployeeRouter())
			r.Mount("/customers", customers.NewHandler(customerSvc).Router())
			r.Mount("/workshop", workshop.NewHandler(catalog, vehicles).Router())
			r.Mount("/inventory", inventory.NewHandler(categories, suppliers, parts).Router())
		})
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server exited", logger.Error(err))
		os.Exit(1)
	}
}

// requirePlatform rejects requests that resolved to a garage subdomain.
func requirePlatform(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := tenant.FromContext(r.Context()); ok {
			core.Error(w, r, core.ErrNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
