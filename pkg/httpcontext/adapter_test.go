package httpcontext

import (
	"context"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/tasks/pkg/logger"
)

func TestAttachPropagatesRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.Set(HeaderRequestID, "abc-123")

	stdCtx, cancel := NewAdapter(time.Second).Attach(&ctx)
	defer cancel()

	if got := appLogger.RequestID(stdCtx); got != "abc-123" {
		t.Errorf("context request id: got %q, want abc-123", got)
	}
	if got := string(ctx.Response.Header.Peek(HeaderRequestID)); got != "abc-123" {
		t.Errorf("response header: got %q, want abc-123", got)
	}
	if _, ok := stdCtx.Deadline(); !ok {
		t.Error("expected a deadline on the attached context")
	}
}

func TestAttachRecordsClientMetadata(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetUserAgent("curl/8.0")

	stdCtx, cancel := NewAdapter(time.Second).Attach(&ctx)
	defer cancel()

	if got := UserAgent(stdCtx); got != "curl/8.0" {
		t.Errorf("user agent: got %q, want curl/8.0", got)
	}
	if got := RemoteAddr(stdCtx); got == "" {
		t.Error("expected remote address on the attached context")
	}
}

func TestClientMetadataMissing(t *testing.T) {
	if got := UserAgent(context.Background()); got != "" {
		t.Errorf("user agent: got %q, want empty", got)
	}
	if got := RemoteAddr(context.Background()); got != "" {
		t.Errorf("remote addr: got %q, want empty", got)
	}
}

func TestEnsureRequestIDGeneratesOnce(t *testing.T) {
	var ctx fasthttp.RequestCtx

	first := EnsureRequestID(&ctx)
	if first == "" {
		t.Fatal("expected generated request id")
	}
	if second := EnsureRequestID(&ctx); second != first {
		t.Errorf("second call: got %q, want %q", second, first)
	}
}

func TestNewAdapterDefaultTimeout(t *testing.T) {
	if a := NewAdapter(0); a.timeout != 5*time.Second {
		t.Errorf("timeout: got %v, want 5s", a.timeout)
	}
}
