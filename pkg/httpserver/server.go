package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"github.com/go-chi/chi/v5"
)

type (
	// Server is an HTTP server whose routes are fixed at construction.
	Server interface {
		// Run binds the listen address and serves in the background.
		// A bind failure is returned before anything is served.
		Run() (Shutdown, error)
		// ShutdownListener delivers the serve loop's exit error, nil after a graceful Shutdown.
		ShutdownListener() <-chan error
		// Addr is the bound address once Run succeeded, the configured one before.
		Addr() string
		ServeHTTP(http.ResponseWriter, *http.Request)
	}

	server struct {
		http.Server
		logger           observability.Logger
		shutdownTimeout  time.Duration
		listener         net.Listener
		shutdownListener chan error
	}

	// Shutdown stops the server gracefully, bounded by the configured shutdown timeout.
	Shutdown func(ctx context.Context) error
	// Middleware decorates an http.Handler.
	Middleware func(handler http.Handler) http.Handler
	// Handler serves a request; a returned error goes to the ErrorHandler.
	Handler func(w http.ResponseWriter, req *http.Request) error
	// ErrorHandler writes the response for an error returned by a Handler.
	ErrorHandler func(ctx context.Context, w http.ResponseWriter, err error)

	// Route binds a Handler and its own middlewares to a method and path.
	Route struct {
		Path        string
		Method      string
		Handler     Handler
		Middlewares []Middleware
	}
)

// New builds a chi-backed server. Without options it listens on :8080 with the
// timeouts listed in server_options.go and logs nowhere.
func New(options ...Option) Server {
	settings := defaultSettings
	for _, option := range options {
		settings = option(settings)
	}

	errorHandler := settings.errorHandler
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler(settings.logger)
	}

	router := chi.NewRouter()
	for _, route := range settings.routes {
		router.Method(route.Method, route.Path,
			Middlewares(newErrorHandler(errorHandler, route.Handler), route.Middlewares...))
	}

	return &server{
		Server: http.Server{
			Addr:              fmt.Sprintf(":%s", settings.port),
			Handler:           Middlewares(router, settings.globalMiddlewares...),
			ReadTimeout:       settings.readTimeout,
			WriteTimeout:      settings.writeTimeout,
			IdleTimeout:       settings.idleTimeout,
			ReadHeaderTimeout: settings.readHeaderTimeout,
			MaxHeaderBytes:    settings.maxHeaderBytes,
		},
		logger:           settings.logger,
		shutdownTimeout:  settings.shutdownTimeout,
		shutdownListener: make(chan error, 1),
	}
}

func (s *server) ShutdownListener() <-chan error {
	return s.shutdownListener
}

func (s *server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.Server.Addr
}

func (s *server) Run() (Shutdown, error) {
	ln, err := net.Listen("tcp", s.Server.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.Server.Addr, err)
	}
	s.listener = ln
	s.logger.Info(context.Background(), "http server listening", observability.String("addr", s.Addr()))

	go func() {
		err := s.Server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.shutdownListener <- err
	}()

	return s.shutdown, nil
}

func (s *server) shutdown(ctx context.Context) error {
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}
	return s.Server.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.Server.Handler.ServeHTTP(w, req)
}

// NewRoute builds a Route; middlewares apply to this route only.
func NewRoute(method, path string, handler Handler, middlewares ...Middleware) Route {
	return Route{
		Path:        path,
		Method:      method,
		Handler:     handler,
		Middlewares: middlewares,
	}
}

// FromHTTPHandler adapts a plain http.Handler (e.g. promhttp) to a Handler that never fails.
func FromHTTPHandler(h http.Handler) Handler {
	return func(w http.ResponseWriter, req *http.Request) error {
		h.ServeHTTP(w, req)
		return nil
	}
}

// Middlewares decorates main so that middlewares[0] sees the request first.
func Middlewares(main http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		main = middlewares[i](main)
	}
	return main
}

// Chain composes middlewares into one, preserving their order.
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		return Middlewares(next, middlewares...)
	}
}

// DefaultErrorHandler logs the error with the request ID, if any, and responds 500.
func DefaultErrorHandler(logger observability.Logger) ErrorHandler {
	return func(ctx context.Context, w http.ResponseWriter, err error) {
		logger.Error(ctx, "http handler error",
			observability.String("request_id", GetRequestID(ctx)),
			observability.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func newErrorHandler(errorHandler ErrorHandler, handler Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := handler(w, req); err != nil {
			errorHandler(req.Context(), w, err)
		}
	})
}
