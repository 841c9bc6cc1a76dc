package hello

import (
	"context"

	"github.com/JailtonJunior94/aop-logging/pkg/execlog"
)

const Greeting = "Hello World!"

// SayHelloSignature names Service.SayHello in trace lines.
var SayHelloSignature = execlog.Sig("HelloWorldService", "sayHello")

// Service produces the greeting.
type Service interface {
	SayHello(ctx context.Context) (string, error)
}

type service struct{}

// NewService returns the plain, untraced service.
func NewService() Service {
	return service{}
}

func (service) SayHello(ctx context.Context) (string, error) {
	return Greeting, nil
}

// tracedService routes SayHello through the selector.
type tracedService struct {
	sayHello func(ctx context.Context) (string, error)
}

// NewTracedService decorates next. If SayHelloSignature is not marked on sel,
// calls pass straight through.
func NewTracedService(sel *execlog.Selector, next Service) Service {
	return &tracedService{
		sayHello: execlog.Around0(sel, SayHelloSignature, next.SayHello),
	}
}

func (s *tracedService) SayHello(ctx context.Context) (string, error) {
	return s.sayHello(ctx)
}
