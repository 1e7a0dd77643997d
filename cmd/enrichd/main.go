// Command enrichd serves the firm enrichment API over HTTP.
//
// Endpoints:
//
//	POST /enrich  — full record assembly: address, phone, currency, about, M&A
//	POST /scrape  — office extraction from a firm's official website
//	POST /ma      — M&A status extraction only
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/leofalp/firmenrich/core/fetch"
	"github.com/leofalp/firmenrich/core/pipeline"
	"github.com/leofalp/firmenrich/core/synthesize"
	"github.com/leofalp/firmenrich/enrich"
	"github.com/leofalp/firmenrich/internal/config"
	"github.com/leofalp/firmenrich/internal/logging"
	"github.com/leofalp/firmenrich/providers/search"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg := config.Load()
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	fetcher := fetch.New(fetch.WithTimeout(cfg.FetchTimeout))
	provider := search.FromConfig(cfg, logger)
	pipe := pipeline.New(provider, fetcher,
		pipeline.WithLimit(cfg.SearchLimit),
		pipeline.WithFallbackMode(synthesize.ParseFallbackMode(cfg.SynthesisFallback)),
		pipeline.WithLogger(logger),
	)
	enricher := enrich.New(
		enrich.WithPipeline(pipe),
		enrich.WithFetcher(fetcher),
		enrich.WithLogger(logger),
	)

	server := newServer(enricher, pipe, logger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: cors.Default().Handler(server.routes()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err.Error())
	}
}

// server holds the handlers' shared dependencies.
type server struct {
	enricher *enrich.Enricher
	pipe     *pipeline.Pipeline
	logger   *slog.Logger
}

func newServer(enricher *enrich.Enricher, pipe *pipeline.Pipeline, logger *slog.Logger) *server {
	return &server{enricher: enricher, pipe: pipe, logger: logger}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /enrich", s.handleEnrich)
	mux.HandleFunc("POST /scrape", s.handleScrape)
	mux.HandleFunc("POST /ma", s.handleMA)
	return s.logRequests(mux)
}

// logRequests logs method, path, status and duration for every request.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start).String(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var input enrich.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, s.enricher.Enrich(r.Context(), input))
}

type scrapeRequest struct {
	Website string `json:"website"`
}

type scrapeResponse struct {
	Offices []enrich.OfficeRecord `json:"offices"`
}

func (s *server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var request scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(request.Website) == "" {
		writeJSON(w, http.StatusOK, scrapeResponse{Offices: []enrich.OfficeRecord{}})
		return
	}

	offices := s.enricher.ScrapeOffices(r.Context(), request.Website)
	if offices == nil {
		offices = []enrich.OfficeRecord{}
	}
	writeJSON(w, http.StatusOK, scrapeResponse{Offices: offices})
}

type maRequest struct {
	FirmName        string   `json:"firm_name"`
	OfficialDomains []string `json:"official_domains,omitempty"`
}

func (s *server) handleMA(w http.ResponseWriter, r *http.Request) {
	var request maRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(request.FirmName) == "" {
		writeError(w, http.StatusBadRequest, "firm_name is required")
		return
	}
	writeJSON(w, http.StatusOK, s.pipe.Run(r.Context(), request.FirmName, request.OfficialDomains))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to encode response", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
