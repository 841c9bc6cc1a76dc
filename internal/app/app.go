// Package app is the composition root: it decides which operations are traced
// and wires them into the HTTP server.
package app

import (
	"context"
	"net/http"

	"github.com/JailtonJunior94/aop-logging/internal/config"
	"github.com/JailtonJunior94/aop-logging/internal/hello"
	"github.com/JailtonJunior94/aop-logging/pkg/execlog"
	"github.com/JailtonJunior94/aop-logging/pkg/httpserver"
	httpserverfx "github.com/JailtonJunior94/aop-logging/pkg/httpserver/fx"
	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"github.com/JailtonJunior94/aop-logging/pkg/observability/noop"
	"github.com/JailtonJunior94/aop-logging/pkg/observability/prom"
	"github.com/JailtonJunior94/aop-logging/pkg/observability/zaplog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Options returns the full application graph.
func Options() fx.Option {
	return fx.Options(
		fx.Provide(
			config.Load,
			NewLogger,
			NewMetrics,
			NewObservability,
			NewTracer,
			NewSelector,
			NewHelloService,
			hello.NewController,
			httpserverfx.AsMiddleware(NewMiddleware),
			fx.Annotate(NewRoutes, fx.ResultTags(`group:"routes,flatten"`)),
		),
		httpserverfx.ConfigModule,
		httpserverfx.Module,
		fx.WithLogger(func(logger *zaplog.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Zap()}
		}),
		fx.Invoke(registerLoggerSync),
	)
}

// NewLogger builds the zap log sink from configuration.
func NewLogger(cfg config.Config) (*zaplog.Logger, observability.Logger, error) {
	logger, err := zaplog.New(zaplog.Config{
		Level:       cfg.Log.LogLevel(),
		Format:      cfg.Log.LogFormat(),
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return nil, nil, err
	}
	return logger, logger, nil
}

// NewMetrics returns the Prometheus recorder, or nil when metrics are disabled.
func NewMetrics(cfg config.Config) *prom.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return prom.New(cfg.ServiceName)
}

func NewObservability(logger observability.Logger, metrics *prom.Metrics) observability.Observability {
	if metrics == nil {
		return observability.New(logger, noop.NewProvider().Metrics())
	}
	return observability.New(logger, metrics)
}

func NewTracer(obs observability.Observability) *execlog.Tracer {
	return execlog.New(obs.Logger(), execlog.WithMetrics(obs.Metrics()))
}

// NewSelector marks the operations that are traced.
func NewSelector(tracer *execlog.Tracer) *execlog.Selector {
	return execlog.NewSelector(tracer, hello.Signatures()...)
}

func NewHelloService(sel *execlog.Selector) hello.Service {
	return hello.NewTracedService(sel, hello.NewService())
}

// NewMiddleware returns the global middleware chain. RequestID runs first so
// recovered panics are logged with the request ID.
func NewMiddleware(logger observability.Logger) httpserver.Middleware {
	return httpserver.Chain(httpserver.RequestID, httpserver.Recovery(logger))
}

func NewRoutes(cfg config.Config, controller *hello.Controller, metrics *prom.Metrics) []httpserver.Route {
	routes := []httpserver.Route{controller.Route()}
	if metrics != nil {
		routes = append(routes, httpserver.NewRoute(http.MethodGet, cfg.Metrics.Path, httpserver.FromHTTPHandler(metrics.Handler())))
	}
	return routes
}

func registerLoggerSync(lc fx.Lifecycle, logger *zaplog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stdout returns EINVAL on some platforms; nothing to recover.
			_ = logger.Sync()
			return nil
		},
	})
}
