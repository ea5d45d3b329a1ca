package container

import (
	"fmt"
	"reflect"
)

// Injectable is implemented by types that list their injectable members
// explicitly instead of marking fields with the inject tag.
//
//	func (s *ReportService) InjectionPoints() []container.InjectionPoint {
//	    return []container.InjectionPoint{
//	        container.Slot("Store", &s.store),
//	    }
//	}
type Injectable interface {
	InjectionPoints() []InjectionPoint
}

// InjectionPoint is one member that receives a registered value.
type InjectionPoint struct {
	// Name identifies the member in errors and logs.
	Name string
	// Type is the registry key looked up for this member.
	Type reflect.Type
	// Set assigns the resolved value.
	Set func(v any)
}

// Slot returns an InjectionPoint that writes the value registered for T into dst.
func Slot[T any](name string, dst *T) InjectionPoint {
	return InjectionPoint{
		Name: name,
		Type: TypeOf[T](),
		Set: func(v any) {
			if v == nil {
				var zero T
				*dst = zero
				return
			}
			*dst = v.(T)
		},
	}
}

// buildUp injects v and returns the injected value. For struct values the
// result is an injected copy; pointers are injected in place.
func (c *Container) buildUp(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return v.Interface(), nil
	}

	if in, ok := v.Interface().(Injectable); ok {
		for _, p := range in.InjectionPoints() {
			dep, found, err := c.Lookup(p.Type)
			if err != nil {
				return nil, err
			}
			if !found {
				return nil, c.missing(v.Type(), p.Name)
			}
			if err := checkAssignable(dep, p.Type, v.Type(), p.Name); err != nil {
				return nil, err
			}
			p.Set(dep)
		}
		return v.Interface(), nil
	}

	var target reflect.Value
	switch {
	case v.Kind() == reflect.Ptr && v.Elem().Kind() == reflect.Struct:
		target = v.Elem()
	case v.Kind() == reflect.Struct:
		target = reflect.New(v.Type()).Elem()
		target.Set(v)
	default:
		return v.Interface(), nil
	}

	if err := c.injectFields(target); err != nil {
		return nil, err
	}
	if v.Kind() == reflect.Struct {
		return target.Interface(), nil
	}
	return v.Interface(), nil
}

// injectFields assigns every tagged field of the addressable struct s, in
// declaration order. Untagged fields are left alone.
func (c *Container) injectFields(s reflect.Value) error {
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if _, marked := field.Tag.Lookup(c.tag); !marked {
			continue
		}

		fv := s.Field(i)
		if !fv.CanSet() {
			return c.missing(t, field.Name)
		}

		dep, found, err := c.Lookup(field.Type)
		if err != nil {
			return err
		}
		if !found {
			return c.missing(t, field.Name)
		}

		if dep == nil {
			fv.Set(reflect.Zero(field.Type))
			continue
		}
		if err := checkAssignable(dep, field.Type, t, field.Name); err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(dep))
	}
	return nil
}

// checkAssignable rejects a registered value whose dynamic type does not fit
// the member it is about to be written to. A nil value always fits.
func checkAssignable(dep any, want, owner reflect.Type, member string) error {
	if dep == nil || want == nil || reflect.TypeOf(dep).AssignableTo(want) {
		return nil
	}
	return fmt.Errorf("container: [%s] resolved to %T, not assignable to %s.%s",
		want, dep, typeName(owner), member)
}
