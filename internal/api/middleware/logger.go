package middleware

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// HeaderProcessTime carries the handler latency in seconds.
const HeaderProcessTime = "X-Process-Time"

// RequestLogger logs one line per request and attaches a request-scoped
// logger (request id, trace id) to the request context so lower layers can
// use zerolog.Ctx.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			res := c.Response()

			rid := res.Header().Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = req.Header.Get(echo.HeaderXRequestID)
			}

			lctx := log.With().Str("request_id", rid)
			if sc := trace.SpanContextFromContext(req.Context()); sc.HasTraceID() {
				lctx = lctx.Str("trace_id", sc.TraceID().String())
			}
			reqLog := lctx.Logger()
			c.SetRequest(req.WithContext(reqLog.WithContext(req.Context())))

			res.Before(func() {
				res.Header().Set(HeaderProcessTime, fmt.Sprintf("%.6f", time.Since(start).Seconds()))
			})

			if err := next(c); err != nil {
				// Render now so the status below is the one sent.
				c.Error(err)
			}

			status := res.Status
			ev := reqLog.Info()
			switch {
			case status >= 500:
				ev = reqLog.Error()
			case status >= 400:
				ev = reqLog.Warn()
			}
			ev.Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")
			return nil
		}
	}
}
