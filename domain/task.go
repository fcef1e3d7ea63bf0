package domain

import "fmt"

// Task is the single entity managed by the service.
type Task struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Day      string `json:"day"`
	Reminder bool   `json:"reminder"`
}

func (t *Task) String() string {
	if t == nil {
		return "Task <nil>"
	}
	return fmt.Sprintf("Task %d", t.ID)
}

// TaskNotFound returns a not-found error naming the missing id.
func TaskNotFound(id int64) *Error {
	return WrapError(ErrCodeNotFound, fmt.Sprintf("task with id %d doesn't exist", id), ErrTaskNotFound)
}

// TaskConflict returns a conflict error for an id that is already taken.
func TaskConflict(id int64) *Error {
	return WrapError(ErrCodeConflict, fmt.Sprintf("task with id %d already exists", id), ErrTaskExists)
}
