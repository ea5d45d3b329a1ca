package container

import (
	"errors"
	"reflect"

	"go.uber.org/zap"
)

// ErrDependencyMissing is matched by every *DependencyMissingError.
var ErrDependencyMissing = errors.New("container: dependency missing")

// DependencyMissingError is returned when an injectable member has no
// registration. Type names the object being built up (the consumer), not the
// missing dependency; Member names the field or injection point, when known.
type DependencyMissingError struct {
	Type   string
	Member string
}

// Error implements the error interface.
func (e *DependencyMissingError) Error() string {
	// Example: container: could not resolve dependency for TestClass
	return "container: could not resolve dependency for " + e.Type
}

// Is reports whether target is ErrDependencyMissing.
func (e *DependencyMissingError) Is(target error) bool {
	return target == ErrDependencyMissing
}

// missing logs and builds the failure for owner.
func (c *Container) missing(owner reflect.Type, member string) error {
	err := &DependencyMissingError{Type: typeName(owner), Member: member}
	c.logger.Debug("container: dependency missing",
		zap.String("type", err.Type),
		zap.String("member", member))
	return err
}

// typeName is the bare name of t, looking through pointers.
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
