package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"course-service/internal/httputil"
	"course-service/internal/metrics"
	"course-service/internal/rowval"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	repo    Repository
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(repo Repository, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/course/{id}/lessons", h.CourseLessons)
	router.Get("/user/{id}/enrollments", h.UserEnrollments)
}

type LessonsResponse struct {
	CourseID int          `json:"course_id"`
	Lessons  []rowval.Row `json:"lessons"`
}

type EnrollmentsResponse struct {
	UserID      int          `json:"user_id"`
	Enrollments []rowval.Row `json:"enrollments"`
}

// CourseLessons lists a course's lessons ordered by ascending position
func (h *Handler) CourseLessons(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	lessons, err := h.repo.LessonsByCourse(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch lessons", "course_id", id, "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}

	h.metrics.RecordLessonsViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, LessonsResponse{
		CourseID: id,
		Lessons:  lessons,
	})
}

// UserEnrollments lists the courses a user is enrolled in
func (h *Handler) UserEnrollments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	enrollments, err := h.repo.EnrollmentsByUser(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch enrollments", "user_id", id, "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}

	h.metrics.RecordEnrollmentsViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, EnrollmentsResponse{
		UserID:      id,
		Enrollments: enrollments,
	})
}
