package container

import (
	"fmt"
	"reflect"
)

// TypeOf returns the registry key for T. Interfaces are keyed by the
// interface type itself, not by whatever implements them.
//
//	key := container.TypeOf[UserRepository]()
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register registers T as its own implementation.
//
//	container.Register[*Mailer](c)
func Register[T any](c *Container) {
	RegisterAs[T, T](c)
}

// RegisterAs registers To as the implementation of From. To is
// default-constructed on first lookup: a pointer to struct gets a new zero
// struct, anything else its zero value.
//
//	container.RegisterAs[Cache, *MemoryCache](c)
//
// It panics if To cannot be assigned to From or if To is an interface.
func RegisterAs[From, To any](c *Container) {
	from, to := TypeOf[From](), TypeOf[To]()
	if !to.AssignableTo(from) {
		panic(fmt.Sprintf("container: [%s] is not assignable to [%s]", to, from))
	}
	if to.Kind() == reflect.Interface {
		panic(fmt.Sprintf("container: [%s] is an interface and cannot be constructed", to))
	}
	c.RegisterFactory(from, func() (any, error) {
		v, _ := construct(to)
		return v, nil
	})
}

// RegisterFunc registers a factory for T. Its error is returned unchanged
// from the lookup that first materializes T.
//
//	container.RegisterFunc(c, func() (*sql.DB, error) { return sql.Open(...) })
func RegisterFunc[T any](c *Container, f func() (T, error)) {
	if f == nil {
		panic(fmt.Sprintf("container: nil factory for [%s]", TypeOf[T]()))
	}
	c.RegisterFactory(TypeOf[T](), func() (any, error) {
		return f()
	})
}

// RegisterInstance registers an already built value for T.
//
//	container.RegisterInstance[*config.Config](c, cfg)
func RegisterInstance[T any](c *Container, v T) {
	c.RegisterFactory(TypeOf[T](), func() (any, error) { return v, nil })
}

// Resolve returns an injected instance of T.
//
//	repo, err := container.Resolve[UserRepository](c)
func Resolve[T any](c *Container) (T, error) {
	var zero T
	v, err := c.Resolve(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%s]: resolved to %T", TypeOf[T](), v)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

// BuildUp injects existing and returns it. Struct values are copied, so
// callers should pass a pointer to have the original modified.
//
//	h, err := container.BuildUp(c, &Handler{})
func BuildUp[T any](c *Container, existing T) (T, error) {
	var zero T
	v, err := c.buildUp(reflect.ValueOf(existing))
	if err != nil {
		return zero, err
	}
	if v == nil {
		return existing, nil
	}
	return v.(T), nil
}

// Lookup returns the singleton registered for T without building it up.
func Lookup[T any](c *Container) (T, bool, error) {
	var zero T
	v, found, err := c.Lookup(TypeOf[T]())
	if err != nil || !found || v == nil {
		return zero, found, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, true, fmt.Errorf("container: Lookup[%s]: resolved to %T", TypeOf[T](), v)
	}
	return typed, true, nil
}
