package httpadapter

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const corsAllowMethods = "GET,POST,OPTIONS"
const corsAllowHeaders = "Content-Type,X-Client-ID,X-Client-Key"

// corsConfig decides which browser origins may call the API. An empty
// origin list means every origin is allowed, matching how the server
// behaves with no SCROLLFORGE_CORS_ORIGINS configured; a non-empty list
// switches to reflecting only the origins named in it, so credentialed
// clients aren't stuck behind a wildcard.
type corsConfig struct {
	allowed map[string]bool
}

func newCORSConfig(origins []string) corsConfig {
	cfg := corsConfig{}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" || o == "*" {
			continue
		}
		if cfg.allowed == nil {
			cfg.allowed = make(map[string]bool)
		}
		cfg.allowed[o] = true
	}
	return cfg
}

func (c corsConfig) allowsAny() bool {
	return len(c.allowed) == 0
}

// originFor returns the value to send back in Access-Control-Allow-Origin
// for a request bearing the given Origin header, and whether CORS headers
// should be sent at all. An unrecognized origin against a restricted list
// gets no CORS headers, which browsers treat as a same-origin-only response.
func (c corsConfig) originFor(requestOrigin string) (string, bool) {
	if c.allowsAny() {
		return "*", true
	}
	if requestOrigin != "" && c.allowed[requestOrigin] {
		return requestOrigin, true
	}
	return "", false
}

func applyCORSHeaders(cfg corsConfig, ctx *app.RequestContext) {
	origin, ok := cfg.originFor(string(ctx.GetHeader("Origin")))
	if !ok {
		return
	}
	ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	if !cfg.allowsAny() {
		ctx.Response.Header.Set("Vary", "Origin")
	}
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
}

func corsMiddleware(cfg corsConfig) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		applyCORSHeaders(cfg, ctx)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
