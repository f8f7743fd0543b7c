package auth

import (
	"context"
	"errors"
	"log/slog"

	"course-service/internal/events"
	"course-service/internal/user"

	"github.com/uptrace/bun/driver/pgdriver"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type Service struct {
	users    user.Repository
	producer events.Producer
	logger   *slog.Logger
}

// NewService builds the auth service. producer may be nil; registration events
// are best-effort.
func NewService(users user.Repository, producer events.Producer, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

// Register creates a new account with role "student" and a bcrypt-hashed
// password. Duplicate emails are rejected both by the pre-check and by the
// unique constraint on users.email, so a lost race between two concurrent
// registrations still surfaces as ErrEmailExists.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	existing, _ := s.users.GetByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &user.User{
		Name:     req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     "student",
	}

	created, err := s.users.Create(ctx, newUser)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	if s.producer != nil {
		event := events.UserRegistered{
			UserID: created.ID,
			Name:   created.Name,
			Email:  created.Email,
			Role:   created.Role,
		}
		if err := s.producer.Publish(created.Email, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish registration event", "error", err)
		}
	}

	return created, nil
}

// Login authenticates by username. Zero matches, more than one match, and a
// failed hash check all collapse into ErrInvalidCredentials so the response
// carries no enumeration signal.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*user.User, error) {
	matches, err := s.users.ListByName(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if len(matches) != 1 {
		return nil, ErrInvalidCredentials
	}

	u := matches[0]
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}
