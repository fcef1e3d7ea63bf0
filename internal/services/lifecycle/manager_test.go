package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestShutdownRunsHooksInReverse(t *testing.T) {
	m := New(time.Second, nil)
	var order []string
	for _, name := range []string{"store", "monitor", "http_server"} {
		name := name
		m.Register(name, func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	if err := m.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	want := []string{"http_server", "monitor", "store"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, order[i], want[i])
		}
	}
}

func TestShutdownJoinsErrorsAndContinues(t *testing.T) {
	m := New(time.Second, nil)
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	ran := false

	m.Register("last", func(ctx context.Context) error { ran = true; return nil })
	m.Register("b", func(ctx context.Context) error { return errB })
	m.Register("a", func(ctx context.Context) error { return errA })

	err := m.Shutdown(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("got %v, want both hook errors", err)
	}
	if !ran {
		t.Error("hook after failures did not run")
	}
}

func TestShutdownOnlyOnce(t *testing.T) {
	m := New(time.Second, nil)
	calls := 0
	m.Register("x", func(ctx context.Context) error { calls++; return nil })

	_ = m.Shutdown(context.Background())
	_ = m.Shutdown(context.Background())
	if calls != 1 {
		t.Errorf("hook ran %d times, want 1", calls)
	}
}

func TestShutdownHooksSeeDeadline(t *testing.T) {
	m := New(50*time.Millisecond, nil)
	m.Register("slow", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected deadline on hook context")
		}
		return nil
	})
	_ = m.Shutdown(context.Background())
}
