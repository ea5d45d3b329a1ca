// Package tiko exposes a process-wide default IoC container.
//
// Applications that prefer explicit wiring should create their own
// container.Container and pass it around; the functions here are shorthand
// for the common case of one container per process.
//
//	tiko.RegisterAs[Greeter, *EnglishGreeter]()
//	h, err := tiko.Resolve[*GreetHandler]()
//
// Tests can swap the default with SetDefault, or reset it with Clear.
package tiko

import (
	"sync/atomic"

	"github.com/km-arc/go-tiko/framework/container"
)

// std is the default container. Readers load it without locking.
var std atomic.Pointer[container.Container]

func init() {
	std.Store(container.New())
}

// Default returns the process-wide container.
func Default() *container.Container {
	return std.Load()
}

// SetDefault replaces the process-wide container. Nil is ignored.
func SetDefault(c *container.Container) {
	if c == nil {
		return
	}
	std.Store(c)
}

// Register registers T as its own implementation.
func Register[T any]() {
	container.Register[T](Default())
}

// RegisterAs registers To as the implementation of From.
func RegisterAs[From, To any]() {
	container.RegisterAs[From, To](Default())
}

// RegisterFunc registers a factory for T.
func RegisterFunc[T any](f func() (T, error)) {
	container.RegisterFunc(Default(), f)
}

// RegisterInstance registers a pre-built value for T.
func RegisterInstance[T any](v T) {
	container.RegisterInstance(Default(), v)
}

// Resolve returns a dependency-injected instance of T.
func Resolve[T any]() (T, error) {
	return container.Resolve[T](Default())
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any]() T {
	return container.MustResolve[T](Default())
}

// BuildUp injects the dependencies of existing and returns it.
func BuildUp[T any](existing T) (T, error) {
	return container.BuildUp(Default(), existing)
}

// Clear drops every registration from the default container.
func Clear() {
	Default().Clear()
}
