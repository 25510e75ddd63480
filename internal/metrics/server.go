package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes /metrics (Prometheus scrape format) and /healthz (a JSON
// health snapshot) on one port.
type Server struct {
	addr   string
	reg    *prometheus.Registry
	status func() any
	srv    *http.Server
}

// NewServer builds a Server. statusFn is called fresh on every /healthz
// request; it is typically (*health.Monitor).Status wrapped to return any.
func NewServer(addr string, reg *prometheus.Registry, statusFn func() any) *Server {
	return &Server{addr: addr, reg: reg, status: statusFn}
}

// Start begins serving in the background and returns immediately. Call
// Shutdown to stop it.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.status())
	})

	s.srv = &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("metrics server: " + err.Error() + "\n")
		}
	}()
}

// Shutdown stops the server, waiting up to ctx's deadline for in-flight
// requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
