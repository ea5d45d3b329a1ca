package container

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations.
//
// Register is called to add bindings. Boot is called after ALL providers have
// been registered, so it is safe to resolve other bindings there.
//
//	type MailProvider struct{ container.BaseProvider }
//
//	func (p *MailProvider) Register(c *container.Container) {
//	    container.RegisterAs[Mailer, *SMTPMailer](c)
//	}
type ServiceProvider interface {
	// Register binds services into the container.
	// Do NOT resolve other bindings here; use Boot for that.
	Register(c *Container)

	// Boot is called after all providers are registered.
	Boot(c *Container) error

	// Provides returns the keys this provider registers.
	// Only consulted for deferred providers.
	Provides() []reflect.Type

	// IsDeferred returns true if Register should run lazily, on the first
	// lookup of one of the Provides() keys.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot, Provides and
// IsDeferred. Embed it and only override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error  { return nil }
func (p *BaseProvider) Provides() []reflect.Type { return nil }
func (p *BaseProvider) IsDeferred() bool         { return false }

// ErrDeferredNotProvided is returned when a deferred provider's Register did
// not bind a key it listed in Provides.
var ErrDeferredNotProvided = errors.New("container: deferred provider did not register its key")

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	c *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		c:          c,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method (unless deferred).
// A provider registered after Boot is booted immediately.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return nil
	}
	r.registered[provider] = true
	booted := r.booted
	if !provider.IsDeferred() {
		r.eager = append(r.eager, provider)
	}
	r.mu.Unlock()

	if provider.IsDeferred() {
		r.deferProvider(provider)
		return nil
	}

	provider.Register(r.c)
	r.c.logger.Debug("container: provider registered",
		zap.String("provider", fmt.Sprintf("%T", provider)))

	if booted {
		return provider.Boot(r.c)
	}
	return nil
}

// deferProvider installs a placeholder for each key the provider declares.
// The first lookup of any of them runs provider.Register once, then resolves
// the real registration that replaced the placeholder.
func (r *ProviderRegistry) deferProvider(provider ServiceProvider) {
	var (
		once    sync.Once
		bootErr error
	)
	load := func() error {
		once.Do(func() {
			provider.Register(r.c)
			r.c.logger.Debug("container: deferred provider loaded",
				zap.String("provider", fmt.Sprintf("%T", provider)))

			r.mu.Lock()
			booted := r.booted
			r.mu.Unlock()
			if booted {
				bootErr = provider.Boot(r.c)
			}
		})
		return bootErr
	}

	for _, key := range provider.Provides() {
		placeholder := &entry{key: key}
		placeholder.factory = func() (any, error) {
			if err := load(); err != nil {
				return nil, err
			}
			if e := r.c.entry(key); e == nil || e == placeholder {
				return nil, fmt.Errorf("%w: [%s]", ErrDeferredNotProvided, key)
			}
			v, _, err := r.c.Lookup(key)
			return v, err
		}
		r.c.put(placeholder)
	}
}

// Boot calls Boot on all eager providers, in registration order, and stops at
// the first error. Calling it again is a no-op.
func (r *ProviderRegistry) Boot() error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		if err := provider.Boot(r.c); err != nil {
			return fmt.Errorf("container: booting %T: %w", provider, err)
		}
	}
	return nil
}

// Booted returns true if Boot has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
