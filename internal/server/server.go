// Package server exposes the import, reconciliation and export operations
// over HTTP. Each call is one atomic unit of work: no partial results, no
// mid-flight cancellation; the store serializes the mutating calls.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"rkaneko/payrecon/internal/exporter"
	"rkaneko/payrecon/internal/generator"
	"rkaneko/payrecon/internal/importer"
	"rkaneko/payrecon/internal/matcher"
	"rkaneko/payrecon/internal/models"
	"rkaneko/payrecon/internal/reconerror"
	"rkaneko/payrecon/internal/store"
	"rkaneko/payrecon/internal/summary"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// maxImportBody caps the accepted CSV upload size.
const maxImportBody = 32 << 20

// Server wires the operation surface onto a record store.
type Server struct {
	store      store.Store
	importer   *importer.Importer
	reconciler *matcher.Reconciler
	exporter   *exporter.Exporter
	generator  *generator.Generator
}

// New builds a Server over the given store.
func New(st store.Store, imp *importer.Importer) *Server {
	return &Server{
		store:      st,
		importer:   imp,
		reconciler: matcher.NewReconciler(st),
		exporter:   exporter.New(st),
		generator:  generator.New(st),
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/import/{kind}", s.handleImport)
		r.Post("/reconcile", s.handleReconcile)
		r.Post("/generate/{month}", s.handleGenerate)
		r.Get("/export/{kind}", s.handleExport)
		r.Get("/summary", s.handleSummary)
	})

	return r
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseImportKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := importer.Options{
		ClearExisting: r.URL.Query().Get("clearExisting") == "true",
	}
	report, err := s.importer.ImportCSV(string(body), kind, opts)
	if err != nil {
		ImportsTotal.WithLabelValues(string(kind), "error").Inc()
		writeJSON(w, importStatus(err), report)
		return
	}
	ImportsTotal.WithLabelValues(string(kind), "ok").Inc()
	RowsImported.WithLabelValues(string(kind)).Add(float64(report.ImportedCount))
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	report, err := s.reconciler.Run()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	ReconciliationsTotal.Inc()
	ReconcileDuration.Observe(time.Since(start).Seconds())
	MatchOutcomes.WithLabelValues("matched").Add(float64(report.FullyMatched))
	MatchOutcomes.WithLabelValues("advisory").Add(float64(report.Advisory))
	MatchOutcomes.WithLabelValues("unmatched").Add(float64(report.Unmatched))
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	report, err := s.generator.GenerateExpenses(chi.URLParam(r, "month"))
	if err != nil {
		if !report.Success && report.Message != "" {
			writeJSON(w, http.StatusBadRequest, report)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseImportKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	csvText, err := s.exporter.ExportCSV(kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(kind)+`.csv"`)
	if _, err := w.Write([]byte(csvText)); err != nil {
		log.WithError(err).Warn("Failed to write export response")
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := summary.Summarize(s.store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// importStatus maps the import error taxonomy onto HTTP status codes: the
// caller's file problems are 4xx, store problems 5xx.
func importStatus(err error) int {
	var emptyErr *reconerror.EmptyInputError
	var headerErr *reconerror.HeaderMappingError
	if errors.As(err, &emptyErr) || errors.As(err, &headerErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": err.Error(),
	})
}
