package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-tiko/framework/config"
	"github.com/km-arc/go-tiko/framework/container"
	"github.com/km-arc/go-tiko/framework/logging"
	"github.com/km-arc/go-tiko/framework/providers"
	"github.com/km-arc/go-tiko/framework/routing"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 10 * time.Second

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Register() and the container helpers directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New loads configuration from envFiles (default ".env") and registers the
// framework core providers.
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)
	return NewWithConfig(cfg)
}

// NewWithConfig is New with an already loaded configuration.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	c := container.New(
		container.WithTag(cfg.Container.InjectTag),
		container.WithLogger(logger),
	)
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	for _, p := range []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggingServiceProvider{Config: cfg, Logger: logger},
		&providers.RoutingServiceProvider{Config: cfg},
	} {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container)
}

// Logger resolves *zap.Logger from the container.
func (a *Application) Logger() *zap.Logger {
	return container.MustResolve[*zap.Logger](a.Container)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container)
}

// Run boots the application (if needed) and serves HTTP on APP_PORT until ctx
// is cancelled, then shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}

	cfg := a.Config()
	logger := a.Logger()
	defer func() { _ = logger.Sync() }()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("app", cfg.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}

// IsDebug reports whether APP_DEBUG is on.
func (a *Application) IsDebug() bool { return a.Config().App.Debug }
