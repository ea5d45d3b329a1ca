// Package container provides a minimal IoC (Inversion of Control) container
// with declarative field injection for Go.
//
// # Overview
//
// The container maps an abstract type (usually an interface) to a
// zero-argument factory. The first lookup runs the factory and caches the
// result; every later lookup returns that same value. Objects requested from
// the container get their marked members filled from those singletons.
//
// Keys are reflect.Type values, compared by identity: two named types with the
// same shape are different keys.
//
// # Registering
//
//	c := container.New()
//
//	// Default-constructed: *MemoryCache gets new(MemoryCache) on first use
//	container.RegisterAs[Cache, *MemoryCache](c)
//
//	// Type registered as itself
//	container.Register[*Clock](c)
//
//	// Explicit factory (its error reaches the caller unchanged)
//	container.RegisterFunc(c, func() (*sql.DB, error) { return sql.Open("pgx", dsn) })
//
//	// Pre-built value
//	container.RegisterInstance[*config.Config](c, cfg)
//
// Registering a key again replaces the previous factory and drops its cached
// value. Clear drops everything.
//
// # Injecting
//
// Mark fields with the inject tag. Only marked fields are touched:
//
//	type ReportHandler struct {
//	    Cache Cache  `inject:""`
//	    Clock *Clock `inject:""`
//	    Title string // left alone
//	}
//
//	h, err := container.Resolve[*ReportHandler](c) // new(ReportHandler), injected
//	h, err = container.BuildUp(c, &ReportHandler{}) // inject an existing value
//
// Types that prefer not to use tags implement Injectable and return their
// slots explicitly with Slot.
//
// A marked member whose type has no registration makes Resolve and BuildUp
// fail with *DependencyMissingError (errors.Is(err, ErrDependencyMissing)).
// Members assigned before the failure keep their values.
//
// # Resolution rules
//
//   - registered key: the cached singleton, built up again on every call so
//     it sees the current registrations.
//   - unregistered key: a fresh default value on every call, built up, never
//     cached. Interfaces cannot be default-constructed.
//
// Injection is one level deep. A factory is expected to return a usable value
// on its own; the container does not construct a factory's dependencies.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c *container.Container) {
//	    container.RegisterAs[Mailer, *SMTPMailer](c)
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// Deferred providers return true from IsDeferred and list their keys in
// Provides; their Register runs on the first lookup of one of those keys.
package container
