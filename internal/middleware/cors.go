package middleware

import (
	"strings"

	"github.com/valyala/fasthttp"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, X-Request-ID"
)

// CORS answers preflight requests and tags every response with the allowed
// origin. allowed is "*" or a comma-separated origin list.
func CORS(allowed string) Middleware {
	origins := parseOrigins(allowed)

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			origin := string(ctx.Request.Header.Peek(fasthttp.HeaderOrigin))
			allowOrigin, ok := origins.match(origin)
			if ok {
				h := &ctx.Response.Header
				h.Set(fasthttp.HeaderAccessControlAllowOrigin, allowOrigin)
				h.Set(fasthttp.HeaderAccessControlExposeHeaders, "X-Request-ID")
				if allowOrigin != "*" {
					h.Add(fasthttp.HeaderVary, fasthttp.HeaderOrigin)
				}
			}

			if ctx.IsOptions() && len(ctx.Request.Header.Peek(fasthttp.HeaderAccessControlRequestMethod)) > 0 {
				if ok {
					h := &ctx.Response.Header
					h.Set(fasthttp.HeaderAccessControlAllowMethods, corsAllowMethods)
					if requested := ctx.Request.Header.Peek(fasthttp.HeaderAccessControlRequestHeaders); len(requested) > 0 {
						h.SetBytesV(fasthttp.HeaderAccessControlAllowHeaders, requested)
					} else {
						h.Set(fasthttp.HeaderAccessControlAllowHeaders, corsAllowHeaders)
					}
					h.Set(fasthttp.HeaderAccessControlMaxAge, "600")
				}
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}

			next(ctx)
		}
	}
}

type originList struct {
	any     bool
	allowed map[string]struct{}
}

func parseOrigins(raw string) originList {
	list := originList{allowed: make(map[string]struct{})}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			list.any = true
		default:
			list.allowed[o] = struct{}{}
		}
	}
	return list
}

func (l originList) match(origin string) (string, bool) {
	if l.any {
		return "*", true
	}
	if _, ok := l.allowed[origin]; ok && origin != "" {
		return origin, true
	}
	return "", false
}
