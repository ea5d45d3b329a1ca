package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds the value registered for an abstract type.
// It takes no arguments: dependencies between registered singletons must be
// wired by whoever writes the factory.
type Factory func() (any, error)

// entry holds one registration and its lazily materialized singleton.
type entry struct {
	key     reflect.Type
	factory Factory

	mu    sync.Mutex
	done  bool
	value any

	// injectMu serializes the build-up done by Resolve; it is separate from
	// mu so a singleton may depend on its own key.
	injectMu sync.Mutex
}

// get returns the singleton, running the factory on first use. ran reports
// whether this call ran the factory. A failing factory leaves the entry
// unmaterialized so a later call retries.
func (e *entry) get() (v any, ran bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done {
		return e.value, false, nil
	}
	v, err = e.factory()
	if err != nil {
		return nil, false, err
	}
	e.value, e.done = v, true
	return v, true, nil
}

func (e *entry) cached() any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// store replaces the cached value after build-up (struct values are copied).
func (e *entry) store(v any) {
	e.mu.Lock()
	e.value = v
	e.mu.Unlock()
}

func (e *entry) materialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.done
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container.
//
// It maps an abstract type (interface or concrete) to a zero-argument factory,
// caches the first value the factory produces, and injects registered values
// into the marked members of requested objects.
type Container struct {
	mu sync.RWMutex

	// abstract → registration
	entries map[reflect.Type]*entry

	tag    string
	logger *zap.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for registration and resolution events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTag changes the struct tag that marks injectable fields.
func WithTag(name string) Option {
	return func(c *Container) {
		if name != "" {
			c.tag = name
		}
	}
}

// DefaultTag is the struct tag that marks a field for injection:
//
//	type Handler struct {
//	    Greeter Greeter `inject:""`
//	}
const DefaultTag = "inject"

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		entries: make(map[reflect.Type]*entry),
		tag:     DefaultTag,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// RegisterFactory stores f as the construction rule for key.
// f is not called until the key is first looked up. A previous registration
// for the same key is replaced together with its cached value.
func (c *Container) RegisterFactory(key reflect.Type, f Factory) {
	if key == nil {
		panic("container: nil type key")
	}
	if f == nil {
		panic(fmt.Sprintf("container: nil factory for [%s]", key))
	}

	c.put(&entry{key: key, factory: f})
}

// put publishes e, replacing any entry for the same key. e must be fully
// initialized: other goroutines may run its factory as soon as put returns.
func (c *Container) put(e *entry) {
	c.mu.Lock()
	_, replaced := c.entries[e.key]
	c.entries[e.key] = e
	c.mu.Unlock()

	c.logger.Debug("container: registered",
		zap.Stringer("type", e.key),
		zap.Bool("replaced", replaced))
}

// Clear discards every registration and cached singleton.
func (c *Container) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[reflect.Type]*entry)
	c.mu.Unlock()

	c.logger.Debug("container: cleared", zap.Int("entries", n))
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Lookup returns the singleton registered for key, materializing it on first
// access. found is false when key has no registration; err is only set when
// the registered factory itself fails.
func (c *Container) Lookup(key reflect.Type) (value any, found bool, err error) {
	e := c.entry(key)
	if e == nil {
		return nil, false, nil
	}

	v, err := c.materialize(e)
	if err != nil {
		return nil, true, err
	}
	return v, true, nil
}

func (c *Container) materialize(e *entry) (any, error) {
	v, ran, err := e.get()
	if err != nil {
		return nil, err
	}
	if ran {
		c.logger.Debug("container: materialized", zap.Stringer("type", e.key))
	}
	return v, nil
}

func (c *Container) entry(key reflect.Type) *entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key]
}

// Resolve returns a dependency-injected instance of key.
//
// A registered key yields its singleton. An unregistered key is
// default-constructed on every call (see construct) and never cached.
// The chosen instance is then built up, on every call, so a singleton
// picks up dependencies registered after it was first resolved.
func (c *Container) Resolve(key reflect.Type) (any, error) {
	if e := c.entry(key); e != nil {
		return c.resolveEntry(e)
	}
	v, ok := construct(key)
	if !ok {
		return nil, c.missing(key, "")
	}
	return c.buildUp(reflect.ValueOf(v))
}

// resolveEntry builds up the singleton of e. Concurrent resolves of the same
// key are serialized so shared fields are never written at the same time.
func (c *Container) resolveEntry(e *entry) (any, error) {
	if _, err := c.materialize(e); err != nil {
		return nil, err
	}

	e.injectMu.Lock()
	defer e.injectMu.Unlock()
	built, err := c.buildUp(reflect.ValueOf(e.cached()))
	if err != nil {
		return nil, err
	}
	e.store(built)
	return built, nil
}

// BuildUp injects registered values into the marked members of target and
// returns the first failure. target is normally a pointer to a struct.
func (c *Container) BuildUp(target any) error {
	_, err := c.buildUp(reflect.ValueOf(target))
	return err
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Registered reports whether key has a registration.
func (c *Container) Registered(key reflect.Type) bool {
	return c.entry(key) != nil
}

// Materialized reports whether the singleton for key has been built.
func (c *Container) Materialized(key reflect.Type) bool {
	e := c.entry(key)
	return e != nil && e.materialized()
}

// Binding describes one registration (for debugging and inspection).
type Binding struct {
	Type         string `json:"type"`
	Materialized bool   `json:"materialized"`
}

// Bindings returns every registration, sorted by type name.
func (c *Container) Bindings() []Binding {
	c.mu.RLock()
	entries := make([]*entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	c.mu.RUnlock()

	out := make([]Binding, 0, len(entries))
	for _, e := range entries {
		out = append(out, Binding{Type: e.key.String(), Materialized: e.materialized()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// construct builds a fresh default value of t.
// Pointers to structs get a new zero struct; interfaces cannot be built.
func construct(t reflect.Type) (any, bool) {
	switch t.Kind() {
	case reflect.Interface:
		return nil, false
	case reflect.Ptr:
		return reflect.New(t.Elem()).Interface(), true
	default:
		return reflect.New(t).Elem().Interface(), true
	}
}
