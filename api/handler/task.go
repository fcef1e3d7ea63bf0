package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasks/api/transport"
	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/pkg/dayfmt"
	"github.com/fastygo/tasks/pkg/httpcontext"
	taskUC "github.com/fastygo/tasks/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc   *taskUC.UseCase
	days *dayfmt.Formatter
}

func NewTaskHandler(uc *taskUC.UseCase, days *dayfmt.Formatter, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	if days == nil {
		days = dayfmt.New()
	}
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		days:        days,
	}
}

// @Summary Redirect to the task list
// @Router / [get]
func (h *TaskHandler) Root(ctx *fasthttp.RequestCtx) {
	ctx.Redirect("/tasks", http.StatusFound)
}

// @Summary List tasks
// @Tags tasks
// @Router /tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewTaskList(tasks))
}

// @Summary Create task
// @Tags tasks
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	req, err := transport.DecodeTaskRequest(ctx.PostBody())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	task, err := h.buildTask(req)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	if err := h.uc.CreateTask(stdCtx, task); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondEmpty(ctx, http.StatusCreated)
}

// @Summary Get task
// @Tags tasks
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := taskID(ctx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	task, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, task)
}

// @Summary Update task
// @Tags tasks
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := taskID(ctx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	req, err := transport.DecodeTaskRequest(ctx.PostBody())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if int64(*req.ID) != id {
		h.respondError(stdCtx, ctx, domain.NewError(domain.ErrCodeInvalid,
			fmt.Sprintf("id: body id %d does not match path id %d", *req.ID, id)))
		return
	}
	task, err := h.buildTask(req)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	updated, err := h.uc.UpdateTask(stdCtx, task)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags tasks
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := taskID(ctx)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondEmpty(ctx, http.StatusNoContent)
}

func (h *TaskHandler) buildTask(req *transport.TaskRequest) (*domain.Task, error) {
	day, err := h.days.Format(*req.Day)
	if err != nil {
		return nil, err
	}
	return req.Task(day)
}

// taskID reads the {id} path segment. Anything that is not an integer cannot
// name a task, so it is reported as not found.
func taskID(ctx *fasthttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewError(domain.ErrCodeNotFound, fmt.Sprintf("task with id %q doesn't exist", raw))
	}
	return id, nil
}
