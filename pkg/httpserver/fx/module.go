package httpserverfx

import (
	"context"

	"github.com/JailtonJunior94/aop-logging/pkg/httpserver"
	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"go.uber.org/fx"
)

// Module provides the HTTP server and ties Run/Shutdown to the fx lifecycle.
// Usage:
//
//	fx.New(
//	    httpserverfx.Module,
//	    fx.Supply(httpserverfx.Config{Port: "8080"}),
//	    fx.Provide(fx.Annotate(
//	        func(h *Handler) httpserver.Route {
//	            return httpserver.NewRoute("GET", "/api", h.Get)
//	        },
//	        fx.ResultTags(`group:"routes"`),
//	    )),
//	)
var Module = fx.Module("httpserver",
	fx.Provide(ProvideServer),
	fx.Invoke(RegisterLifecycle),
)

// ServerParams contains dependencies for creating a server.
type ServerParams struct {
	fx.In

	Config       Config                  `optional:"true"`
	Routes       []httpserver.Route      `group:"routes"`
	Middlewares  []httpserver.Middleware `group:"middlewares"`
	ErrorHandler httpserver.ErrorHandler `optional:"true"`
	Logger       observability.Logger    `optional:"true"`
}

// ServerResult contains the server output.
type ServerResult struct {
	fx.Out

	Server httpserver.Server
}

// ProvideServer creates an HTTP server with injected dependencies.
func ProvideServer(p ServerParams) ServerResult {
	cfg := p.Config
	if cfg.Port == "" {
		cfg = DefaultConfig()
	}

	opts := []httpserver.Option{
		httpserver.WithPort(cfg.Port),
		httpserver.WithReadTimeout(cfg.ReadTimeout),
		httpserver.WithWriteTimeout(cfg.WriteTimeout),
		httpserver.WithIdleTimeout(cfg.IdleTimeout),
		httpserver.WithReadHeaderTimeout(cfg.ReadHeaderTimeout),
		httpserver.WithMaxHeaderBytes(cfg.MaxHeaderBytes),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout),
	}

	if p.Logger != nil {
		opts = append(opts, httpserver.WithLogger(p.Logger))
	}

	if len(p.Routes) > 0 {
		opts = append(opts, httpserver.WithRoutes(p.Routes...))
	}

	if len(p.Middlewares) > 0 {
		opts = append(opts, httpserver.WithMiddlewares(p.Middlewares...))
	}

	if p.ErrorHandler != nil {
		opts = append(opts, httpserver.WithErrorHandler(p.ErrorHandler))
	}

	return ServerResult{Server: httpserver.New(opts...)}
}

// LifecycleParams contains dependencies for server lifecycle management.
type LifecycleParams struct {
	fx.In

	Server     httpserver.Server
	LC         fx.Lifecycle
	Shutdowner fx.Shutdowner        `optional:"true"`
	Logger     observability.Logger `optional:"true"`
}

// RegisterLifecycle binds the server on start, failing the start on a bind
// error, and stops the app if the serve loop later exits with an error.
func RegisterLifecycle(p LifecycleParams) {
	var shutdown httpserver.Shutdown

	p.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			if shutdown, err = p.Server.Run(); err != nil {
				return err
			}
			go watchServer(p)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}

func watchServer(p LifecycleParams) {
	err := <-p.Server.ShutdownListener()
	if err == nil {
		return
	}
	if p.Logger != nil {
		p.Logger.Error(context.Background(), "http server stopped", observability.Error(err))
	}
	if p.Shutdowner != nil {
		_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
	}
}

// AsRoute annotates a Route constructor into the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(f, fx.ResultTags(`group:"routes"`))
}

// AsMiddleware annotates a Middleware constructor into the "middlewares" group.
func AsMiddleware(f any) any {
	return fx.Annotate(f, fx.ResultTags(`group:"middlewares"`))
}
