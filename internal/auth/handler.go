package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"course-service/internal/httputil"
	"course-service/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service *Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", h.Register)
	router.Post("/login", h.Login)
}

// Register creates a new user account
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode register request", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.WarnContext(r.Context(), "register validation failed", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	created, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			httputil.RespondWithError(w, http.StatusConflict, ErrEmailExists.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "registration failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user registered", "email", created.Email)
	h.metrics.RecordUserRegistered(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, RegisterResponse{
		Message: "user registered successfully",
		User: RegisteredUser{
			Name:  created.Name,
			Email: created.Email,
		},
	})
}

// Login authenticates a user by username and password
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode login request", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.WarnContext(r.Context(), "login validation failed", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	u, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httputil.RespondWithError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "login failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "username", u.Name)
	h.metrics.RecordLoginSucceeded(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, LoginResponse{
		Message:  "login successful",
		UserID:   u.ID,
		Username: u.Name,
		Role:     u.Role,
	})
}
