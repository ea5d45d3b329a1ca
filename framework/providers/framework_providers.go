package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-tiko/framework/config"
	"github.com/km-arc/go-tiko/framework/container"
	gohttp "github.com/km-arc/go-tiko/framework/http"
	"github.com/km-arc/go-tiko/framework/logging"
	"github.com/km-arc/go-tiko/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound types:
//   - *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(c *container.Container) {
	container.RegisterInstance(c, p.Config)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger. Logger is bound as is
// when set; otherwise it is built lazily from the "Log" section of Config.
//
// Bound types:
//   - *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Config *config.Config
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(c *container.Container) {
	if p.Logger != nil {
		container.RegisterInstance(c, p.Logger)
		return
	}
	cfg := p.Config
	container.RegisterFunc(c, func() (*zap.Logger, error) {
		return logging.New(cfg.Log)
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the HTTP router and, when enabled, mounts the
// container inspection endpoint on Boot.
//
// Bound types:
//   - *routing.Router
//
// Routes:
//   - GET /_container/bindings (Container.Inspect)
type RoutingServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *RoutingServiceProvider) Register(c *container.Container) {
	container.RegisterFunc(c, func() (*routing.Router, error) {
		logger, err := container.Resolve[*zap.Logger](c)
		if err != nil {
			return nil, err
		}
		return routing.New(logger), nil
	})
}

func (p *RoutingServiceProvider) Boot(c *container.Container) error {
	if !p.Config.Container.Inspect {
		return nil
	}
	router, err := container.Resolve[*routing.Router](c)
	if err != nil {
		return err
	}
	router.Prefix("/_container", func(r *routing.Router) {
		r.Get("/bindings", gohttp.BindingsHandler(c))
	})
	return nil
}
