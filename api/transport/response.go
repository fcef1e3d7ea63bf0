package transport

import "github.com/fastygo/tasks/domain"

// TaskList is the body of GET /tasks.
type TaskList struct {
	Tasks []domain.Task `json:"tasks"`
}

// NewTaskList never renders a null array.
func NewTaskList(tasks []domain.Task) TaskList {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return TaskList{Tasks: tasks}
}

// Envelope wraps error responses and the health payload.
type Envelope struct {
	Status  string      `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
	}
}

// NewError returns an error envelope with optional data.
func NewError(code string, message string, data interface{}) Envelope {
	return Envelope{
		Status:  "error",
		Code:    code,
		Message: message,
		Data:    data,
	}
}
