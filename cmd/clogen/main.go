// Command clogen serves the CLO synthesis API: it loads the curriculum
// mapping document, merges the persisted override, and exposes selection,
// synthesis, record, and export endpoints over HTTP.
package main

import (
	"context"
	"errors"
	"expvar"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clogen/internal/blob"
	"clogen/internal/export"
	"clogen/internal/httpapi"
	"clogen/internal/mapping"
	"clogen/internal/session"
)

const defaultAddr = ":8080"

func main() {
	if err := run(); err != nil {
		log.Fatalf("clogen: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mappingURL := os.Getenv("CLOGEN_MAPPING_URL")
	if mappingURL == "" {
		return errors.New("CLOGEN_MAPPING_URL required")
	}
	addr := os.Getenv("CLOGEN_HTTP_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	overrides, err := mapping.OpenOverrideStore()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := overrides.Close(); cerr != nil {
			log.Printf("close override store: %v", cerr)
		}
	}()

	metrics, err := session.NewPrometheusMetricsRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	loader := mapping.NewLoader(mappingURL, nil)
	svc := session.NewService(loader, overrides, metrics)
	if warnings, err := svc.Reload(ctx); err != nil {
		// The store stays unavailable; a later reload through the API can
		// recover without restarting the process.
		log.Printf("initial mapping load failed: %v", err)
	} else {
		for _, w := range warnings {
			log.Printf("mapping load: %s", w)
		}
	}

	artifacts, err := blob.Open(ctx)
	if err != nil {
		return err
	}
	worker := export.NewWorker(svc, export.NewBlobObjectStore(artifacts), &export.MemoryAuditLog{})
	worker.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := worker.Stop(shutdownCtx); err != nil {
			log.Printf("stop export worker: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", httpapi.NewHandler(svc, worker))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (blob driver %s)", addr, artifacts.Driver())
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
