package middleware

import (
	"testing"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
}

func TestCORSWildcard(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.Header.Set(fasthttp.HeaderOrigin, "http://localhost:3000")

	CORS("*")(okHandler)(&ctx)

	if got := string(ctx.Response.Header.Peek(fasthttp.HeaderAccessControlAllowOrigin)); got != "*" {
		t.Errorf("Allow-Origin: got %q, want *", got)
	}
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Errorf("status: got %d, want 200", ctx.Response.StatusCode())
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(fasthttp.MethodOptions)
	ctx.Request.Header.Set(fasthttp.HeaderOrigin, "http://localhost:3000")
	ctx.Request.Header.Set(fasthttp.HeaderAccessControlRequestMethod, "PUT")

	CORS("*")(func(ctx *fasthttp.RequestCtx) { called = true })(&ctx)

	if called {
		t.Error("preflight reached the wrapped handler")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusNoContent {
		t.Errorf("status: got %d, want 204", ctx.Response.StatusCode())
	}
	if got := string(ctx.Response.Header.Peek(fasthttp.HeaderAccessControlAllowMethods)); got != corsAllowMethods {
		t.Errorf("Allow-Methods: got %q", got)
	}
}

func TestCORSOriginList(t *testing.T) {
	mw := CORS("http://a.example, http://b.example")

	var allowed fasthttp.RequestCtx
	allowed.Request.Header.Set(fasthttp.HeaderOrigin, "http://b.example")
	mw(okHandler)(&allowed)
	if got := string(allowed.Response.Header.Peek(fasthttp.HeaderAccessControlAllowOrigin)); got != "http://b.example" {
		t.Errorf("Allow-Origin: got %q, want http://b.example", got)
	}

	var denied fasthttp.RequestCtx
	denied.Request.Header.Set(fasthttp.HeaderOrigin, "http://evil.example")
	mw(okHandler)(&denied)
	if got := denied.Response.Header.Peek(fasthttp.HeaderAccessControlAllowOrigin); len(got) != 0 {
		t.Errorf("Allow-Origin set for unlisted origin: %q", got)
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := AccessLog(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	})

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/tasks")
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	h(&ctx)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Level != zap.ErrorLevel {
		t.Errorf("level: got %v, want error", entry.Level)
	}
	fields := entry.ContextMap()
	if fields["path"] != "/tasks" || fields["status"] != int64(500) {
		t.Errorf("fields: %v", fields)
	}
	if fields["request_id"] == "" {
		t.Error("request_id missing")
	}
	if len(ctx.Response.Header.Peek("X-Request-ID")) == 0 {
		t.Error("X-Request-ID header not set")
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
			return func(ctx *fasthttp.RequestCtx) {
				order = append(order, name)
				next(ctx)
			}
		}
	}

	var ctx fasthttp.RequestCtx
	Chain(okHandler, mark("outer"), mark("inner"))(&ctx)
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("got %v, want [outer inner]", order)
	}
}
