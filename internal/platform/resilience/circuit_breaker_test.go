package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func newTestBreaker(threshold, halfOpen int) (*CircuitBreaker, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	b := NewCircuitBreakerWithClock(BreakerSettings{
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenProbes:   halfOpen,
	}, clock)
	return b, clock
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, clock := newTestBreaker(2, 1)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	clock.Advance(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, clock := newTestBreaker(1, 1)

	b.RecordFailure()
	clock.Advance(5 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second concurrent probe to be rejected, got %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestCircuitBreaker_Execute(t *testing.T) {
	b, _ := newTestBreaker(2, 1)
	boom := errors.New("boom")
	fail := func(context.Context) error { return boom }

	for range 2 {
		if err := b.Execute(context.Background(), fail); !errors.Is(err, boom) {
			t.Fatalf("expected fn error, got %v", err)
		}
	}

	called := false
	err := b.Execute(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected open breaker to short-circuit, err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_ExecuteIgnoresCallerCancellation(t *testing.T) {
	b, _ := newTestBreaker(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected cancellation not to trip the breaker, got %s", state)
	}
}

func TestBreakerSettings_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   BreakerSettings
		want BreakerSettings
	}{
		{
			name: "zero value",
			in:   BreakerSettings{},
			want: BreakerSettings{FailureThreshold: 5, OpenTimeout: 15 * time.Second, HalfOpenProbes: 2},
		},
		{
			name: "negative fields",
			in:   BreakerSettings{Enabled: true, FailureThreshold: -1, OpenTimeout: -time.Second, HalfOpenProbes: -3},
			want: DefaultBreakerSettings(),
		},
		{
			name: "kept as configured",
			in:   BreakerSettings{Enabled: true, FailureThreshold: 3, OpenTimeout: time.Minute, HalfOpenProbes: 1},
			want: BreakerSettings{Enabled: true, FailureThreshold: 3, OpenTimeout: time.Minute, HalfOpenProbes: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.WithDefaults(); got != tc.want {
				t.Fatalf("unexpected settings: got=%+v want=%+v", got, tc.want)
			}
		})
	}
}
