package hello

import (
	"context"
	"io"
	"net/http"

	"github.com/JailtonJunior94/aop-logging/pkg/execlog"
	"github.com/JailtonJunior94/aop-logging/pkg/httpserver"
)

// TestSignature names Controller.Test in trace lines.
var TestSignature = execlog.Sig("HelloWorldController", "test")

// Controller exposes the greeting over HTTP.
type Controller struct {
	service Service
	test    func(ctx context.Context) (string, error)
}

// NewController wires the controller's own Test operation through sel.
func NewController(sel *execlog.Selector, service Service) *Controller {
	c := &Controller{service: service}
	c.test = execlog.Around0(sel, TestSignature, c.greet)
	return c
}

func (c *Controller) greet(ctx context.Context) (string, error) {
	return c.service.SayHello(ctx)
}

// Test is the entry operation behind GET /hello.
func (c *Controller) Test(ctx context.Context) (string, error) {
	return c.test(ctx)
}

// Hello handles GET /hello.
func (c *Controller) Hello(w http.ResponseWriter, r *http.Request) error {
	greeting, err := c.Test(r.Context())
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusOK)
	_, err = io.WriteString(w, greeting)
	return err
}

// Route returns the GET /hello route.
func (c *Controller) Route() httpserver.Route {
	return httpserver.NewRoute(http.MethodGet, "/hello", c.Hello, httpserver.PlainText)
}

// Signatures lists the operations this package marks for tracing.
func Signatures() []execlog.Signature {
	return []execlog.Signature{TestSignature, SayHelloSignature}
}
