// Command tiko is a small demo server wired through the container.
//
//	GET /hello/{name}          greets through an injected Greeter
//	GET /_container/bindings   lists registrations
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-tiko/framework/app"
	"github.com/km-arc/go-tiko/framework/container"
	gohttp "github.com/km-arc/go-tiko/framework/http"
	"github.com/km-arc/go-tiko/framework/routing"
)

// Greeter builds a greeting for a name.
type Greeter interface {
	Greet(name string) string
}

type englishGreeter struct{}

func (*englishGreeter) Greet(name string) string { return "Hello, " + name + "!" }

// GreetHandler is built up by the container on every request.
type GreetHandler struct {
	Greeter Greeter     `inject:""`
	Logger  *zap.Logger `inject:""`
}

func (h *GreetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := routing.Param(r, "name")
	h.Logger.Debug("greeting", zap.String("name", name))
	gohttp.NewResponse(w).Success(map[string]string{"message": h.Greeter.Greet(name)})
}

// GreetServiceProvider binds the demo services and routes.
type GreetServiceProvider struct{ container.BaseProvider }

func (p *GreetServiceProvider) Register(c *container.Container) {
	container.RegisterAs[Greeter, *englishGreeter](c)
}

func (p *GreetServiceProvider) Boot(c *container.Container) error {
	router, err := container.Resolve[*routing.Router](c)
	if err != nil {
		return err
	}
	router.Get("/hello/{name}", func(w http.ResponseWriter, r *http.Request) {
		h, err := container.Resolve[*GreetHandler](c)
		if err != nil {
			gohttp.NewResponse(w).Error(http.StatusInternalServerError, err.Error())
			return
		}
		h.ServeHTTP(w, r)
	})
	return nil
}

// logBindings lists the registrations at start-up when APP_DEBUG is on.
func logBindings(a *app.Application, logger *zap.Logger) {
	if !a.IsDebug() {
		return
	}
	for _, b := range a.Bindings() {
		logger.Debug("binding",
			zap.String("type", b.Type),
			zap.Bool("materialized", b.Materialized))
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	application, err := app.New()
	if err != nil {
		return err
	}
	if err := application.Register(&GreetServiceProvider{}); err != nil {
		return err
	}
	logBindings(application, application.Logger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx)
}
