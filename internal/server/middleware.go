package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/rs/zerolog"
)

// AccessLog returns a Kratos middleware that logs each routed request at
// debug level. /metrics is registered outside the route table and is not
// logged.
func AccessLog(log zerolog.Logger) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req any) (any, error) {
			start := time.Now()
			reply, err := handler(ctx, req)

			ev := log.Debug()
			if tr, ok := transport.FromServerContext(ctx); ok {
				ev = ev.Str("operation", tr.Operation())
			}
			ev.Dur("elapsed", time.Since(start)).Err(err).Msg("Request served")

			return reply, err
		}
	}
}
