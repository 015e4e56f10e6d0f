// Package main implements famtreed, the HTTP+websocket server that
// hosts the Reactive Store over a durable person graph.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/chris-hammersley/family-chart/famconfig"
	"github.com/chris-hammersley/family-chart/famimport"
	gwhttp "github.com/chris-hammersley/family-chart/gateway/http"
	"github.com/chris-hammersley/family-chart/layout"
	"github.com/chris-hammersley/family-chart/metrics"
	"github.com/chris-hammersley/family-chart/person"
	"github.com/chris-hammersley/family-chart/persistence"
	"github.com/chris-hammersley/family-chart/persistence/natskv"
	"github.com/chris-hammersley/family-chart/store"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "famtreed"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("famtreed exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s (build %s)\n", appName, Version, BuildTime)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	cfg, err := famconfig.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cliCfg.Validate {
		slog.Info("configuration is valid")
		return nil
	}

	slog.Info("starting famtreed", "version", Version, "build_time", BuildTime, "http_addr", cfg.HTTP.Addr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	adapter, err := natskv.Connect(ctx, natskv.Config{
		URLs:     cfg.NATS.URLs,
		Bucket:   cfg.NATS.Bucket,
		Username: cfg.NATS.Username,
		Password: cfg.NATS.Password,
	})
	if err != nil {
		return fmt.Errorf("connect to NATS persistence: %w", err)
	}

	graph, err := bootstrapGraph(ctx, adapter, cliCfg.ImportPath)
	if err != nil {
		return fmt.Errorf("bootstrap graph: %w", err)
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.New(registry)
	recorder.SetGraphSize(graph.Len())

	return serve(ctx, cfg, graph, recorder, registry, adapter, cliCfg.ShutdownTimeout)
}

// bootstrapGraph loads the persisted graph; if the backend starts
// empty and importPath is set, it seeds the graph from a famimport
// dataset and pushes it to the adapter so a restart finds it already
// there.
func bootstrapGraph(ctx context.Context, adapter persistence.Adapter, importPath string) (*person.Graph, error) {
	graph, err := persistence.LoadGraphFrom(ctx, adapter)
	if err != nil {
		return nil, err
	}

	if graph.Len() > 0 || importPath == "" {
		return graph, nil
	}

	slog.Info("persistence backend is empty, importing seed dataset", "path", importPath)
	f, err := os.Open(importPath)
	if err != nil {
		return nil, fmt.Errorf("open import dataset: %w", err)
	}
	defer f.Close()

	imported, err := famimport.LoadGraph(f)
	if err != nil {
		return nil, fmt.Errorf("import seed dataset: %w", err)
	}
	if err := persistence.SyncGraph(ctx, adapter, imported); err != nil {
		return nil, fmt.Errorf("persist seed dataset: %w", err)
	}
	return imported, nil
}

// serve wires the Reactive Store to the gateway and runs the HTTP
// server until ctx is cancelled. The store's onUpdate closes over a
// forward-declared *gwhttp.Gateway because the gateway itself needs
// the already-constructed store — store.New's onUpdate is the one
// place that reference has to flow backward.
func serve(
	ctx context.Context,
	cfg *famconfig.Config,
	graph *person.Graph,
	recorder *metrics.Recorder,
	registry *prometheus.Registry,
	adapter persistence.Adapter,
	shutdownTimeout time.Duration,
) error {
	var gw *gwhttp.Gateway
	onUpdate := func(result *layout.Result, props store.UpdateProps) {
		if gw != nil {
			gw.Broadcast(result, props)
		}
	}

	s := store.NewWithMetrics(graph, "", cfg.Layout.ToLayoutConfig(), onUpdate, recorder)

	gw = gwhttp.New(s,
		gwhttp.WithMetrics(recorder),
		gwhttp.WithPersistence(adapter),
		gwhttp.WithCORS("*"),
	)

	mux := http.NewServeMux()
	gw.RegisterRoutes("/api/", mux)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: mux}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return refreshGraphSize(gctx, s, recorder)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("received shutdown signal")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("famtreed shutdown complete")
	return nil
}

// refreshGraphSize re-reads the graph size into the graph-size gauge
// every 30 seconds while the server runs; the store also sets that gauge
// on every UpdateTree.
func refreshGraphSize(ctx context.Context, s *store.Store, recorder *metrics.Recorder) error {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			recorder.SetGraphSize(s.GetData().Len())
		}
	}
}
