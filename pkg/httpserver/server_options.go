package httpserver

import (
	"time"

	"github.com/JailtonJunior94/aop-logging/pkg/observability"
	"github.com/JailtonJunior94/aop-logging/pkg/observability/noop"
)

const (
	defaultHTTPPort          = "8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

var defaultSettings = settings{
	port:              defaultHTTPPort,
	readTimeout:       defaultReadTimeout,
	writeTimeout:      defaultWriteTimeout,
	idleTimeout:       defaultIdleTimeout,
	readHeaderTimeout: defaultReadHeaderTimeout,
	maxHeaderBytes:    defaultMaxHeaderBytes,
	shutdownTimeout:   defaultShutdownTimeout,
	logger:            noop.NewProvider().Logger(),
}

type (
	// Option adjusts server settings; later options win.
	Option   func(s settings) settings
	settings struct {
		port              string
		readTimeout       time.Duration
		writeTimeout      time.Duration
		idleTimeout       time.Duration
		readHeaderTimeout time.Duration
		maxHeaderBytes    int
		shutdownTimeout   time.Duration
		routes            []Route
		globalMiddlewares []Middleware
		errorHandler      ErrorHandler
		logger            observability.Logger
	}
)

// WithPort sets the listen port; "0" picks a free one.
func WithPort(port string) Option {
	return func(s settings) settings {
		s.port = port
		return s
	}
}

// WithReadTimeout bounds reading a whole request, body included. Zero disables it.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s settings) settings {
		s.readTimeout = timeout
		return s
	}
}

// WithWriteTimeout bounds writing the response. Zero disables it.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s settings) settings {
		s.writeTimeout = timeout
		return s
	}
}

// WithIdleTimeout bounds how long a keep-alive connection waits for its next request.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s settings) settings {
		s.idleTimeout = timeout
		return s
	}
}

func WithReadHeaderTimeout(timeout time.Duration) Option {
	return func(s settings) settings {
		s.readHeaderTimeout = timeout
		return s
	}
}

func WithMaxHeaderBytes(size int) Option {
	return func(s settings) settings {
		s.maxHeaderBytes = size
		return s
	}
}

// WithShutdownTimeout caps the graceful drain done by Shutdown. Zero leaves only the caller's deadline.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s settings) settings {
		s.shutdownTimeout = timeout
		return s
	}
}

// WithRoutes appends routes. The route table is frozen when New returns.
func WithRoutes(routes ...Route) Option {
	return func(s settings) settings {
		s.routes = append(s.routes, routes...)
		return s
	}
}

// WithMiddlewares appends middlewares applied to every route, outermost first.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(s settings) settings {
		s.globalMiddlewares = append(s.globalMiddlewares, middlewares...)
		return s
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(s settings) settings {
		s.errorHandler = handler
		return s
	}
}

// WithLogger sets the logger for the listening line and DefaultErrorHandler.
func WithLogger(logger observability.Logger) Option {
	return func(s settings) settings {
		s.logger = logger
		return s
	}
}
