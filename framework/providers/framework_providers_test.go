package providers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-tiko/framework/config"
	"github.com/km-arc/go-tiko/framework/container"
	"github.com/km-arc/go-tiko/framework/providers"
	"github.com/km-arc/go-tiko/framework/routing"
)

func testConfig(inspect bool) *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "Test", Env: "testing", Port: "0"},
		Log:       config.LogConfig{Level: "error", Format: "json"},
		Container: config.ContainerConfig{InjectTag: "inject", Inspect: inspect},
	}
}

func boot(t *testing.T, cfg *config.Config) *container.Container {
	t.Helper()
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&providers.ConfigServiceProvider{Config: cfg}))
	require.NoError(t, reg.Register(&providers.LoggingServiceProvider{Config: cfg}))
	require.NoError(t, reg.Register(&providers.RoutingServiceProvider{Config: cfg}))
	require.NoError(t, reg.Boot())
	return c
}

func TestConfigServiceProvider_BindsInstance(t *testing.T) {
	cfg := testConfig(false)
	c := boot(t, cfg)

	assert.Same(t, cfg, container.MustResolve[*config.Config](c))
}

func TestLoggingServiceProvider_LazyFromConfig(t *testing.T) {
	cfg := testConfig(false)
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&providers.LoggingServiceProvider{Config: cfg}))

	assert.False(t, c.Materialized(container.TypeOf[*zap.Logger]()))
	logger := container.MustResolve[*zap.Logger](c)
	assert.False(t, logger.Core().Enabled(zap.WarnLevel))
	assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestLoggingServiceProvider_PrebuiltLogger(t *testing.T) {
	logger := zap.NewNop()
	c := container.New()
	reg := container.NewProviderRegistry(c)
	require.NoError(t, reg.Register(&providers.LoggingServiceProvider{Logger: logger}))

	assert.Same(t, logger, container.MustResolve[*zap.Logger](c))
}

func TestRoutingServiceProvider_MountsBindings(t *testing.T) {
	c := boot(t, testConfig(true))

	router := container.MustResolve[*routing.Router](c)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_container/bindings", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"type":"*routing.Router"`)
	assert.Contains(t, rr.Body.String(), `"materialized":true`)
}

func TestRoutingServiceProvider_InspectDisabled(t *testing.T) {
	c := boot(t, testConfig(false))

	router := container.MustResolve[*routing.Router](c)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_container/bindings", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
