package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig
	Log       LogConfig
	Container ContainerConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

type ContainerConfig struct {
	// InjectTag is the struct tag that marks injectable fields.
	InjectTag string
	// Inspect mounts GET /_container/bindings on the router.
	Inspect bool
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	appEnv := Get("APP_ENV", "local")
	return &Config{
		App: AppConfig{
			Name:  Get("APP_NAME", "Tiko"),
			Env:   appEnv,
			Debug: GetBool("APP_DEBUG", appEnv != "production"),
			Port:  Get("APP_PORT", "8000"),
		},
		Log: LogConfig{
			Level:  Get("LOG_LEVEL", "info"),
			Format: Get("LOG_FORMAT", defaultFormat(appEnv)),
		},
		Container: ContainerConfig{
			InjectTag: Get("CONTAINER_INJECT_TAG", "inject"),
			Inspect:   GetBool("CONTAINER_INSPECT", true),
		},
	}
}

// ── helpers ─────────────────────────────────────────────────────────────────

func defaultFormat(appEnv string) string {
	if appEnv == "production" {
		return "json"
	}
	return "console"
}

// Get returns a raw env value, falling back when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetBool returns a bool env value, falling back when it is unset or unparsable.
func GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
