package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"nmeastream/internal/config"
	"nmeastream/internal/ingest"
	"nmeastream/internal/metrics"
	"nmeastream/internal/store"
	"nmeastream/internal/udp"
	"nmeastream/internal/web"
)

func main() {
	var configPath string
	var summaryPath string
	flag.StringVar(&configPath, "config", "./nmeastream.yaml", "Path to YAML config")
	flag.StringVar(&summaryPath, "summary", "", "Print a summary of an NMEA capture file and exit")
	flag.Parse()

	if summaryPath != "" {
		if err := printLogSummary(os.Stdout, summaryPath); err != nil {
			log.Fatalf("summary failed: %v", err)
		}
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logs := web.NewLogBuffer(2000)
	log.SetOutput(io.MultiWriter(os.Stderr, logs))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, logs)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.close()

	log.Printf("nmeastream starting")
	if err := a.run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("nmeastream stopped: %v", err)
	}
	log.Printf("nmeastream stopping")
}

// app wires config into the running services.
type app struct {
	cfg   config.Config
	logs  *web.LogBuffer
	reg   *prometheus.Registry
	svc   *ingest.Service
	db    *store.Store
	fwd   *udp.Forwarder
	runID string
}

func newApp(ctx context.Context, cfg config.Config, logs *web.LogBuffer) (*app, error) {
	a := &app{cfg: cfg, logs: logs, reg: prometheus.NewRegistry()}
	a.reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []ingest.Option{ingest.WithMetrics(metrics.New(a.reg))}
	if cfg.Store.Enable {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		a.db = db
		run, err := db.BeginRun(ctx, cfg.Source.Kind)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		a.runID = run.ID
		log.Printf("store path=%s run_id=%s", cfg.Store.Path, run.ID)
		opts = append(opts, ingest.WithSink(run))
	}

	if cfg.Forward.Enable {
		fwd, err := udp.NewForwarder(cfg.Forward.Dest)
		if err != nil {
			a.close()
			return nil, err
		}
		a.fwd = fwd
		log.Printf("forward udp dest=%s", fwd.Dest())
		opts = append(opts, ingest.WithSink(fwd))
	}

	a.svc = ingest.New(ingest.Config{
		Enable:      cfg.Source.Enabled(),
		Source:      cfg.Source.Kind,
		Path:        cfg.Source.Path,
		Addr:        cfg.Source.Addr,
		ChunkSize:   cfg.Source.ChunkSize,
		MaxFragment: cfg.Source.MaxFragment,
		Separator:   cfg.Source.Separator,
		RecentLines: cfg.Source.RecentLines,
	}, opts...)
	return a, nil
}

// run blocks until ctx is done. Without the web API there is nothing left
// to serve once a one-shot source is exhausted, so it also returns then.
func (a *app) run(ctx context.Context) error {
	if err := a.svc.Start(ctx); err != nil {
		return err
	}

	if !a.cfg.Web.Enable {
		select {
		case <-ctx.Done():
		case <-a.svc.Done():
			snap := a.svc.Snapshot()
			log.Printf("ingest done sentences=%d dropped=%d parse_errors=%d", snap.Sentences, snap.Dropped, snap.ParseErrors)
		}
		return nil
	}

	log.Printf("web listening addr=%s", a.cfg.Web.Listen)
	h := web.Handler(web.Options{Status: a.svc, Gatherer: a.reg, Logs: a.logs})
	return web.Serve(ctx, a.cfg.Web.Listen, h)
}

func (a *app) close() {
	if a.svc != nil {
		a.svc.Close()
	}
	if a.fwd != nil {
		_ = a.fwd.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("store close failed: %v", err)
		}
	}
}
