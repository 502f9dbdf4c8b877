// Package server exposes the agent's Prometheus metrics and a health probe
// over HTTP. It serves no snapshot data.
package server

import (
	"context"
	"net/http"
	"time"

	_ "github.com/go-kratos/kratos/v2/encoding/json"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/go-tangra/go-tangra-sysinfo/internal/scheduler"
)

// StatusSource reports the scheduler's progress. *scheduler.Scheduler
// implements it.
type StatusSource interface {
	Status() scheduler.Status
}

// Health is the /healthz response body.
type Health struct {
	Status string           `json:"status"`
	Runs   scheduler.Status `json:"runs"`
}

// New builds the HTTP server listening on addr.
func New(addr string, gatherer prometheus.Gatherer, status StatusSource, log zerolog.Logger) *kratoshttp.Server {
	srv := kratoshttp.NewServer(
		kratoshttp.Address(addr),
		kratoshttp.Timeout(10*time.Second),
		kratoshttp.Middleware(
			recovery.Recovery(),
			AccessLog(log),
		),
	)

	srv.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r := srv.Route("/")
	r.GET("/healthz", func(ctx kratoshttp.Context) error {
		h := ctx.Middleware(func(context.Context, any) (any, error) {
			return health(status), nil
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		code := http.StatusOK
		if out.(Health).Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		return ctx.Result(code, out)
	})

	return srv
}

func health(src StatusSource) Health {
	st := src.Status()
	h := Health{Status: "ok", Runs: st}
	if st.LastError != "" {
		h.Status = "degraded"
	}
	return h
}

// Run serves until ctx is cancelled.
func Run(ctx context.Context, srv *kratoshttp.Server, log zerolog.Logger) error {
	go func() {
		<-ctx.Done()
		_ = srv.Stop(context.Background())
	}()

	log.Info().Msg("Metrics server starting")
	if err := srv.Start(ctx); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
