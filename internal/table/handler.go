package table

import (
	"log/slog"
	"net/http"

	"course-service/internal/httputil"
	"course-service/internal/metrics"
	"course-service/internal/rowval"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	repo    Repository
	logger  *slog.Logger
	metrics *metrics.Metrics
	service string
	version string
}

func NewHandler(repo Repository, logger *slog.Logger, metrics *metrics.Metrics, service, version string) *Handler {
	return &Handler{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		service: service,
		version: version,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.Index)
	router.Get("/test-db", h.TestDB)
	for _, name := range Exposed {
		router.Get("/"+name, h.list(name))
	}
}

type IndexResponse struct {
	Service   string   `json:"service"`
	Version   string   `json:"version"`
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

type TestDBResponse struct {
	Status string         `json:"status"`
	Tables map[string]int `json:"tables"`
}

type ListResponse struct {
	Table string       `json:"table"`
	Count int          `json:"count"`
	Data  []rowval.Row `json:"data"`
}

// Index returns API metadata
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	endpoints := []string{"/test-db", "/course/{id}/lessons", "/user/{id}/enrollments", "/register", "/login"}
	for _, name := range Exposed {
		endpoints = append(endpoints, "/"+name)
	}

	httputil.RespondWithJSON(w, http.StatusOK, IndexResponse{
		Service:   h.service,
		Version:   h.version,
		Message:   h.service + " is running",
		Endpoints: endpoints,
	})
}

// TestDB checks database connectivity and reports per-table row counts
func (h *Handler) TestDB(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "database ping failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "database connection failed")
		return
	}

	counts := make(map[string]int, len(Exposed))
	for _, name := range Exposed {
		count, err := h.repo.Count(r.Context(), name)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "failed to count rows", "table", name, "error", err)
			httputil.RespondWithError(w, http.StatusInternalServerError, "database error")
			return
		}
		counts[name] = count
	}

	httputil.RespondWithJSON(w, http.StatusOK, TestDBResponse{
		Status: "database connected successfully",
		Tables: counts,
	})
}

func (h *Handler) list(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.repo.FetchAll(r.Context(), name)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "failed to fetch table", "table", name, "error", err)
			httputil.RespondWithError(w, http.StatusInternalServerError, "database error")
			return
		}

		h.metrics.RecordTableViewed(r.Context())

		httputil.RespondWithJSON(w, http.StatusOK, ListResponse{
			Table: name,
			Count: len(rows),
			Data:  rows,
		})
	}
}
