package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-tiko/framework/container"
)

// reportService lists its slots instead of using tags.
type reportService struct {
	prop  *TestProperty
	named ITestClass
	spare *TestProperty
}

func (s *reportService) InjectionPoints() []container.InjectionPoint {
	return []container.InjectionPoint{
		container.Slot("prop", &s.prop),
		container.Slot("named", &s.named),
	}
}

func TestInjectable_UsesDeclaredSlots(t *testing.T) {
	c := container.New()
	container.Register[*TestProperty](c)
	container.RegisterAs[ITestClass, *TestClass](c)

	s, err := container.Resolve[*reportService](c)
	require.NoError(t, err)

	assert.NotNil(t, s.prop)
	assert.NotNil(t, s.named)
	assert.Nil(t, s.spare)
	assert.Same(t, s.prop, container.MustResolve[*TestProperty](c))
}

func TestInjectable_MissingSlot(t *testing.T) {
	c := container.New()
	container.Register[*TestProperty](c)

	err := c.BuildUp(&reportService{})

	var missing *container.DependencyMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "reportService", missing.Type)
	assert.Equal(t, "named", missing.Member)
}

func TestSlot_NilValueClearsDestination(t *testing.T) {
	var dst ITestClass = &TestClass{}
	slot := container.Slot("dst", &dst)

	slot.Set(nil)
	assert.Nil(t, dst)
	assert.Equal(t, container.TypeOf[ITestClass](), slot.Type)
}

func TestRegisterInstance_NilInterfaceIsInjectedAsNil(t *testing.T) {
	c := container.New()
	container.RegisterInstance[ITestClass](c, nil)

	target := &twoDeps{}
	container.Register[*TestProperty](c)

	require.NoError(t, c.BuildUp(target))
	assert.NotNil(t, target.First)
	assert.Nil(t, target.Second)
}

func TestBuildUp_WrongDynamicType_FailsTheSameOnBothPaths(t *testing.T) {
	c := container.New()
	c.RegisterFactory(container.TypeOf[*TestProperty](), func() (any, error) {
		return "not a property", nil
	})
	container.RegisterAs[ITestClass, *TestClass](c)

	var slotErr error
	require.NotPanics(t, func() {
		slotErr = c.BuildUp(&reportService{})
	})
	require.Error(t, slotErr)
	assert.Equal(t,
		"container: [*container_test.TestProperty] resolved to string, not assignable to reportService.prop",
		slotErr.Error())

	tagErr := c.BuildUp(&TestClass{})
	require.Error(t, tagErr)
	assert.Equal(t,
		"container: [*container_test.TestProperty] resolved to string, not assignable to TestClass.TestProperty",
		tagErr.Error())
	assert.NotErrorIs(t, tagErr, container.ErrDependencyMissing)
}
