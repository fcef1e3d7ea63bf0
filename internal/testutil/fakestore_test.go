package testutil

import (
	"testing"

	"github.com/fastygo/tasks/repository"
)

func TestFakeTaskRepositoryContract(t *testing.T) {
	RunRepositoryContract(t, func(t *testing.T) repository.TaskRepository {
		return NewFakeTaskRepository()
	})
}
