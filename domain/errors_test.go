package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestTaskNotFound(t *testing.T) {
	err := TaskNotFound(42)

	if got := err.Error(); got != "task with id 42 doesn't exist" {
		t.Errorf("Error: got %q", got)
	}
	if !IsDomainError(err, ErrCodeNotFound) {
		t.Error("expected NOT_FOUND code")
	}
	if !errors.Is(err, ErrTaskNotFound) {
		t.Error("expected to unwrap to ErrTaskNotFound")
	}
}

func TestTaskConflict(t *testing.T) {
	err := fmt.Errorf("create: %w", TaskConflict(7))
	if !IsDomainError(err, ErrCodeConflict) {
		t.Error("expected CONFLICT through wrapping")
	}
	if !errors.Is(err, ErrTaskExists) {
		t.Error("expected to unwrap to ErrTaskExists")
	}
}

func TestStorage(t *testing.T) {
	if Storage("noop", nil) != nil {
		t.Error("nil error must stay nil")
	}

	cause := errors.New("connection reset")
	err := Storage("list tasks", cause)
	if !IsDomainError(err, ErrCodeStorage) {
		t.Errorf("got %v, want STORAGE", err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause lost")
	}
	if got := err.Error(); got != "list tasks: connection reset" {
		t.Errorf("Error: got %q", got)
	}

	notFound := TaskNotFound(1)
	if got := Storage("get task", notFound); got != error(notFound) {
		t.Errorf("domain error re-wrapped: %v", got)
	}
}

func TestIsDomainErrorPlainError(t *testing.T) {
	if IsDomainError(errors.New("plain"), ErrCodeInternal) {
		t.Error("plain error must not match any code")
	}
}

func TestTaskString(t *testing.T) {
	if got := (&Task{ID: 3}).String(); got != "Task 3" {
		t.Errorf("got %q", got)
	}
}
