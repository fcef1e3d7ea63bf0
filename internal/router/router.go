package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/tasks/api/handler"
	"github.com/fastygo/tasks/internal/middleware"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// New registers every route and wraps the router in mws, outermost first.
func New(handlers Handlers, mws ...middleware.Middleware) fasthttp.RequestHandler {
	r := router.New()
	r.RedirectTrailingSlash = false

	if handlers.Health != nil {
		r.GET("/health", handlers.Health.Check)
	}

	r.GET("/", handlers.Task.Root)
	r.GET("/tasks", handlers.Task.GetTasks)
	r.POST("/tasks", handlers.Task.CreateTask)
	r.GET("/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/tasks/{id}", handlers.Task.DeleteTask)

	return middleware.Chain(r.Handler, mws...)
}
