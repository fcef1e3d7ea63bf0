package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fastygo/tasks/domain"
)

const (
	MaxTextLength = 250
	MaxDayLength  = 100
)

// TaskRequest is the body of POST /tasks and PUT /tasks/{id}. Pointers tell
// a missing field apart from its zero value.
type TaskRequest struct {
	ID       *TaskID `json:"id"`
	Text     *string `json:"text"`
	Day      *string `json:"day"`
	Reminder *bool   `json:"reminder"`
}

// TaskID is a task id as sent by clients. Integral JSON numbers are accepted
// in any notation (1, 1.0, 1e3); fractions and strings are not.
type TaskID int64

func (id *TaskID) UnmarshalJSON(b []byte) error {
	s := string(b)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*id = TaskID(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return &json.UnmarshalTypeError{Value: s, Type: reflect.TypeOf(int64(0)), Field: "id"}
	}
	*id = TaskID(f)
	return nil
}

// DecodeTaskRequest unmarshals body and checks that every field is present.
func DecodeTaskRequest(body []byte) (*TaskRequest, error) {
	if len(body) == 0 {
		return nil, invalid("request body required")
	}

	var req TaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, invalid(fmt.Sprintf("%s: expected %s", typeErr.Field, typeErr.Type))
		}
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid payload", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate reports the first missing or unusable field.
func (r *TaskRequest) Validate() error {
	switch {
	case r.ID == nil:
		return missing("id")
	case r.Text == nil:
		return missing("text")
	case r.Day == nil:
		return missing("day")
	case r.Reminder == nil:
		return missing("reminder")
	}

	if strings.TrimSpace(*r.Text) == "" {
		return invalid("text: must not be empty")
	}
	if utf8.RuneCountInString(*r.Text) > MaxTextLength {
		return invalid(fmt.Sprintf("text: longer than %d characters", MaxTextLength))
	}
	return nil
}

// Task builds the domain entity with an already formatted day.
func (r *TaskRequest) Task(day string) (*domain.Task, error) {
	if utf8.RuneCountInString(day) > MaxDayLength {
		return nil, invalid(fmt.Sprintf("day: longer than %d characters", MaxDayLength))
	}
	return &domain.Task{
		ID:       int64(*r.ID),
		Text:     *r.Text,
		Day:      day,
		Reminder: *r.Reminder,
	}, nil
}

func missing(field string) error {
	return invalid(fmt.Sprintf("%s: missing required parameter", field))
}

func invalid(msg string) error {
	return domain.NewError(domain.ErrCodeInvalid, msg)
}
