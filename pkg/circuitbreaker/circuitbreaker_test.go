package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func failingConfig() Config {
	return Config{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		Timeout:             20 * time.Millisecond,
		HalfOpenMaxRequests: 3,
	}
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker(failingConfig())

	for i := 0; i < 3; i++ {
		if err := cb.Execute(func() error { return errBoom }); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: err = %v; want boom", i, err)
		}
	}

	if err := cb.Execute(func() error { return nil }); !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Errorf("err = %v; want ErrCircuitBreakerOpen", err)
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(failingConfig())

	for i := 0; i < 10; i++ {
		cb.Execute(func() error { return errBoom })
		cb.Execute(func() error { return nil })
	}

	if state := cb.CurrentState(); state != StateClosed {
		t.Errorf("state = %v; want closed", state)
	}
}

func TestRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(failingConfig())

	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return errBoom })
	}
	if state := cb.CurrentState(); state != StateOpen {
		t.Fatalf("state = %v; want open", state)
	}

	time.Sleep(25 * time.Millisecond)

	// Two half-open successes close the breaker again.
	for i := 0; i < 2; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("half-open call %d: %v", i, err)
		}
	}

	if state := cb.CurrentState(); state != StateClosed {
		t.Errorf("state = %v; want closed", state)
	}
}
