package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nmeastream/internal/ingest"
	"nmeastream/internal/nmea"
)

// maxParseBody bounds POST /api/parse bodies.
const maxParseBody = 1 << 20

// StatusSource is the slice of the ingest service the API reads from.
// *ingest.Service implements it.
type StatusSource interface {
	Snapshot() ingest.Snapshot
	Recent() []string
}

// Options wires the optional parts of the API. Nil fields disable the
// matching routes or fall back to defaults.
type Options struct {
	Status   StatusSource
	Registry *nmea.Registry
	Gatherer prometheus.Gatherer
	Logs     *LogBuffer
}

func Handler(opts Options) http.Handler {
	reg := opts.Registry
	if reg == nil {
		reg = nmea.DefaultRegistry()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", parseHandler(reg))
		r.Get("/status", statusHandler(opts.Status))
		r.Get("/recent", recentHandler(opts.Status))
		if opts.Logs != nil {
			r.Get("/logs", opts.Logs.ServeHTTP)
		}
		r.Get("/types", typesHandler(reg))
	})

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func statusHandler(src StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if src == nil {
			http.Error(w, "ingest unavailable", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, src.Snapshot())
	}
}

type recentResponse struct {
	NowUTC string   `json:"now_utc"`
	Lines  []string `json:"lines"`
}

func recentHandler(src StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			http.Error(w, "ingest unavailable", http.StatusNotFound)
			return
		}
		lines := src.Recent()
		if s := strings.TrimSpace(r.URL.Query().Get("tail")); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				http.Error(w, "tail must be a positive integer", http.StatusBadRequest)
				return
			}
			if n < len(lines) {
				lines = lines[len(lines)-n:]
			}
		}
		if lines == nil {
			lines = []string{}
		}
		writeJSON(w, http.StatusOK, recentResponse{
			NowUTC: time.Now().UTC().Format(time.RFC3339Nano),
			Lines:  lines,
		})
	}
}

type layoutInfo struct {
	Code        string       `json:"code"`
	Description string       `json:"description"`
	Fields      []nmea.Field `json:"fields"`
	List        *nmea.Field  `json:"list,omitempty"`
}

func typesHandler(reg *nmea.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		codes := reg.Codes()
		out := make([]layoutInfo, 0, len(codes))
		for _, code := range codes {
			l := reg.Resolve(code)
			out = append(out, layoutInfo{Code: l.Code, Description: l.Description, Fields: l.Fields, List: l.List})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_, _ = w.Write(b)
	_, _ = w.Write([]byte("\n"))
}

func Serve(ctx context.Context, listenAddr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MiB
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
