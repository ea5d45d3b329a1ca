package container_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-tiko/framework/container"
)

func TestConcurrentFirstAccess_FactoryRunsOnce(t *testing.T) {
	c := container.New()

	var calls atomic.Int32
	container.RegisterFunc(c, func() (*TestProperty, error) {
		calls.Add(1)
		return &TestProperty{ID: 1}, nil
	})

	const goroutines = 64
	results := make([]*TestProperty, goroutines)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = container.MustResolve[*TestProperty](c)
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		require.Same(t, results[0], r)
	}
}

func TestConcurrentRegisterResolveClear_NoCorruption(t *testing.T) {
	c := container.New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				container.Register[*TestProperty](c)
				container.RegisterAs[ITestClass, *TestClass](c)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tc, err := container.Resolve[*TestClass](c)
				if err == nil {
					assert.NotNil(t, tc.TestProperty)
				} else {
					assert.ErrorIs(t, err, container.ErrDependencyMissing)
				}
				_ = c.Bindings()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				c.Clear()
			}
		}()
	}
	wg.Wait()
}

func TestConcurrentResolve_RegisteredSingletonSameInstance(t *testing.T) {
	c := container.New()
	container.Register[*TestProperty](c)
	container.RegisterAs[ITestClass, *TestClass](c)

	var wg sync.WaitGroup
	results := make([]ITestClass, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = container.MustResolve[ITestClass](c)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Same(t, results[0], r)
	}
	assert.NotNil(t, results[0].(*TestClass).TestProperty)
}

func TestConcurrentFirstAccess_MaterializedLoggedOnce(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := container.New(container.WithLogger(zap.New(core)))
	container.Register[*TestProperty](c)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_ = container.MustResolve[*TestProperty](c)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, logs.FilterMessage("container: materialized").Len())
}

// waitOrFail fails the test if wg is not done within a few seconds.
func waitOrFail(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("goroutines did not finish: lookup deadlocked")
	}
}

func TestConcurrentDeferredRegister_AgainstLookup(t *testing.T) {
	for i := 0; i < 200; i++ {
		c := container.New()
		reg := container.NewProviderRegistry(c)
		key := container.TypeOf[ITestClass]()

		var wg sync.WaitGroup
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			assert.NoError(t, reg.Register(&deferredProvider{}))
		}()
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 10; j++ {
				v, found, err := c.Lookup(key)
				if !assert.NoError(t, err) {
					return
				}
				if found {
					assert.IsType(t, &TestClass{}, v)
					return
				}
			}
		}()
		close(start)
		waitOrFail(t, &wg)
	}
}

func TestConcurrentDeferredRegister_UnfulfilledKeyFailsCleanly(t *testing.T) {
	for i := 0; i < 200; i++ {
		c := container.New()
		reg := container.NewProviderRegistry(c)
		key := container.TypeOf[*plain]()

		var wg sync.WaitGroup
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			assert.NoError(t, reg.Register(&liarProvider{}))
		}()
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 10; j++ {
				_, found, err := c.Lookup(key)
				if found {
					assert.ErrorIs(t, err, container.ErrDeferredNotProvided)
					return
				}
				assert.NoError(t, err)
			}
		}()
		close(start)
		waitOrFail(t, &wg)
	}
}
