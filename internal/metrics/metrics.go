// Package metrics exposes run counters over Prometheus's client library,
// optionally served on --metrics-addr the way the teacher's index command
// exposes its own /metrics endpoint.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the counters one run updates.
type Metrics struct {
	FilesScanned      prometheus.Counter
	ParseErrors       prometheus.Counter
	ImportsResolved   prometheus.Counter
	ImportsStubbed    prometheus.Counter
	FunctionsAnalyzed prometheus.Counter
}

// New registers the counters against a fresh registry, so repeated
// runs in the same process (tests, an MCP-style long-lived server)
// never collide with prometheus's global default registry.
func New() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		FilesScanned: factory.NewCounter(prometheus.CounterOpts{
			Name: "cairo_parser_files_scanned_total",
			Help: "Total .cairo files scanned across all roots.",
		}),
		ParseErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "cairo_parser_parse_errors_total",
			Help: "Total parse_error diagnostics produced.",
		}),
		ImportsResolved: factory.NewCounter(prometheus.CounterOpts{
			Name: "cairo_parser_imports_resolved_total",
			Help: "Total imports resolved to a local declaration.",
		}),
		ImportsStubbed: factory.NewCounter(prometheus.CounterOpts{
			Name: "cairo_parser_imports_stubbed_total",
			Help: "Total imports satisfied by a synthesized stub.",
		}),
		FunctionsAnalyzed: factory.NewCounter(prometheus.CounterOpts{
			Name: "cairo_parser_functions_analyzed_total",
			Help: "Total functions that went through CFG/dataflow analysis.",
		}),
	}, reg
}

// Serve starts a /metrics HTTP listener on addr and blocks until ctx is
// canceled. A run with --metrics-addr unset never calls this.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
