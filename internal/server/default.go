package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/sitecms/modules/core/presentation/controllers"
	"github.com/iota-uz/sitecms/modules/core/services"
	"github.com/iota-uz/sitecms/pkg/application"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/constants"
	"github.com/iota-uz/sitecms/pkg/metrics"
	"github.com/iota-uz/sitecms/pkg/middleware"
	"github.com/iota-uz/sitecms/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	// Nil when collections are kept in memory.
	Pool       *pgxpool.Pool
	Entrypoint string
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration
	authService := app.Service(services.AuthService{}).(*services.AuthService)

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.LoggerOptions{
			LogRequestBody: true,
			MaxBodyLength:  2048,
			Entrypoint:     options.Entrypoint,
		}),

		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.CorsOrigins...),
	}

	if conf.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
		middleware.TracedMiddleware("authorize"),
		middleware.Authorize(authService, conf.SidCookieKey),
		middleware.OpsGuard(conf, options.Entrypoint),
	)

	app.RegisterMiddleware(middlewares...)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	handlerOpts := controllers.ErrorHandlersOptions{
		Entrypoint: options.Entrypoint,
	}
	serverInstance := server.NewHTTPServer(
		app,
		controllers.NotFound(handlerOpts),
		controllers.MethodNotAllowed(handlerOpts),
	)
	return serverInstance, nil
}
