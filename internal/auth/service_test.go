package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"course-service/internal/auth"
	"course-service/internal/events"
	"course-service/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail   map[string]*user.User
	nextID    int
	createErr error
	listErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*user.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return nil, errors.New("duplicate key value violates unique constraint")
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByName(ctx context.Context, name string) ([]user.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var matches []user.User
	for _, u := range f.byEmail {
		if u.Name == name {
			matches = append(matches, *u)
		}
	}
	return matches, nil
}

var _ user.Repository = (*fakeUserRepo)(nil)

type recordingProducer struct {
	keys   []string
	events []interface{}
	err    error
}

func (p *recordingProducer) Publish(key string, value interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.events = append(p.events, value)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

var _ events.Producer = (*recordingProducer)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and defaults role", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := auth.NewService(repo, nil, testLogger())

		created, err := service.Register(ctx, auth.RegisterRequest{
			Username: "alice",
			Email:    "a@x.com",
			Password: "secret",
		})
		require.NoError(t, err)

		assert.Equal(t, "student", created.Role)
		assert.NotEqual(t, "secret", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret")))
	})

	t.Run("publishes registration event", func(t *testing.T) {
		repo := newFakeUserRepo()
		producer := &recordingProducer{}
		service := auth.NewService(repo, producer, testLogger())

		created, err := service.Register(ctx, auth.RegisterRequest{
			Username: "alice",
			Email:    "a@x.com",
			Password: "secret",
		})
		require.NoError(t, err)

		require.Len(t, producer.events, 1)
		event, ok := producer.events[0].(events.UserRegistered)
		require.True(t, ok)
		assert.Equal(t, created.ID, event.UserID)
		assert.Equal(t, "a@x.com", event.Email)
		assert.Equal(t, []string{"a@x.com"}, producer.keys)
	})

	t.Run("publish failure does not fail registration", func(t *testing.T) {
		repo := newFakeUserRepo()
		producer := &recordingProducer{err: errors.New("broker down")}
		service := auth.NewService(repo, producer, testLogger())

		_, err := service.Register(ctx, auth.RegisterRequest{
			Username: "alice",
			Email:    "a@x.com",
			Password: "secret",
		})
		assert.NoError(t, err)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := auth.NewService(repo, nil, testLogger())

		_, err := service.Register(ctx, auth.RegisterRequest{
			Username: "alice", Email: "a@x.com", Password: "secret",
		})
		require.NoError(t, err)

		_, err = service.Register(ctx, auth.RegisterRequest{
			Username: "alice2", Email: "a@x.com", Password: "other",
		})
		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, service *auth.Service, name, email, password string) {
		t.Helper()
		_, err := service.Register(ctx, auth.RegisterRequest{
			Username: name, Email: email, Password: password,
		})
		require.NoError(t, err)
	}

	t.Run("success returns the matching user", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := auth.NewService(repo, nil, testLogger())
		register(t, service, "alice", "a@x.com", "secret")

		u, err := service.Login(ctx, auth.LoginRequest{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Name)
		assert.Equal(t, "student", u.Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := auth.NewService(repo, nil, testLogger())

		_, err := service.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "whatever"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := auth.NewService(repo, nil, testLogger())
		register(t, service, "alice", "a@x.com", "secret")

		_, err := service.Login(ctx, auth.LoginRequest{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("ambiguous username", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := auth.NewService(repo, nil, testLogger())
		register(t, service, "twin", "one@x.com", "secret")
		register(t, service, "twin", "two@x.com", "secret")

		_, err := service.Login(ctx, auth.LoginRequest{Username: "twin", Password: "secret"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("repository error is not invalid credentials", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.listErr = errors.New("connection refused")
		service := auth.NewService(repo, nil, testLogger())

		_, err := service.Login(ctx, auth.LoginRequest{Username: "alice", Password: "secret"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}
