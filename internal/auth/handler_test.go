package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"course-service/internal/auth"
	"course-service/internal/metrics"
	"course-service/internal/user"
	"course-service/testing/testdb"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthHandler_Shared(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, (*user.User)(nil))

	// Create handler ONCE and reuse across all subtests
	userRepo := user.NewRepository(pgContainer.DB)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	authService := auth.NewService(userRepo, nil, logger)
	authHandler := auth.NewHandler(authService, logger, metrics.NewMock())
	router := chi.NewRouter()
	authHandler.RegisterRoutes(router)

	userCount := func(t *testing.T) int {
		t.Helper()
		count, err := pgContainer.DB.NewSelect().Model((*user.User)(nil)).Count(context.Background())
		require.NoError(t, err)
		return count
	}

	postJSON := func(t *testing.T, path string, payload map[string]interface{}) *httptest.ResponseRecorder {
		t.Helper()
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Register_Success", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "users")

		w := postJSON(t, "/register", map[string]interface{}{
			"username": "alice",
			"email":    "a@x.com",
			"password": "secret",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.NotEmpty(t, response["message"])

		userBody, ok := response["user"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "alice", userBody["name"])
		assert.Equal(t, "a@x.com", userBody["email"])
		assert.NotContains(t, userBody, "password")

		// Stored password is a verifiable bcrypt hash, never the input
		stored := new(user.User)
		err := pgContainer.DB.NewSelect().Model(stored).Where("email = ?", "a@x.com").Scan(context.Background())
		require.NoError(t, err)
		assert.NotEqual(t, "secret", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")))
		assert.Equal(t, "student", stored.Role)
	})

	t.Run("Register_DuplicateEmail", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "users")

		w := postJSON(t, "/register", map[string]interface{}{
			"username": "alice",
			"email":    "a@x.com",
			"password": "secret",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		// Same email, different username
		w = postJSON(t, "/register", map[string]interface{}{
			"username": "alice2",
			"email":    "a@x.com",
			"password": "other",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "email already exists")
		assert.Equal(t, 1, userCount(t))
	})

	t.Run("Register_MissingFields", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "users")

		cases := []map[string]interface{}{
			{"email": "a@x.com", "password": "secret"},
			{"username": "alice", "password": "secret"},
			{"username": "alice", "email": "a@x.com"},
			{"username": "", "email": "a@x.com", "password": "secret"},
			{"username": "alice", "email": "a@x.com", "password": ""},
		}

		for _, payload := range cases {
			w := postJSON(t, "/register", payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}

		// No rows inserted for any rejected request
		assert.Equal(t, 0, userCount(t))
	})

	t.Run("Login_Success", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "users")

		w := postJSON(t, "/register", map[string]interface{}{
			"username": "alice",
			"email":    "a@x.com",
			"password": "secret",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = postJSON(t, "/login", map[string]interface{}{
			"username": "alice",
			"password": "secret",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var response auth.LoginResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.NotZero(t, response.UserID)
		assert.Equal(t, "alice", response.Username)
		assert.Equal(t, "student", response.Role)
	})

	t.Run("Login_NoEnumerationSignal", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "users")

		w := postJSON(t, "/register", map[string]interface{}{
			"username": "alice",
			"email":    "a@x.com",
			"password": "secret",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		wrongPassword := postJSON(t, "/login", map[string]interface{}{
			"username": "alice",
			"password": "wrong",
		})
		unknownUser := postJSON(t, "/login", map[string]interface{}{
			"username": "nobody",
			"password": "whatever",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)

		// Identical body shape for wrong password vs unknown user
		assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
	})

	t.Run("Login_AmbiguousUsername", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "users")

		ctx := context.Background()
		hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
		require.NoError(t, err)

		for _, email := range []string{"one@x.com", "two@x.com"} {
			u := &user.User{Name: "twin", Email: email, Password: string(hash), Role: "student"}
			_, err := pgContainer.DB.NewInsert().Model(u).Exec(ctx)
			require.NoError(t, err)
		}

		// Two accounts share the name: login is rejected rather than guessing
		w := postJSON(t, "/login", map[string]interface{}{
			"username": "twin",
			"password": "secret",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Login_MissingFields", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "users")

		w := postJSON(t, "/login", map[string]interface{}{
			"username": "alice",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = postJSON(t, "/login", map[string]interface{}{
			"password": "secret",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_DatabaseDown(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New("dial tcp 10.0.0.1:5432: connection refused")
	repo.listErr = repo.createErr

	authService := auth.NewService(repo, nil, testLogger())
	authHandler := auth.NewHandler(authService, testLogger(), metrics.NewMock())
	router := chi.NewRouter()
	authHandler.RegisterRoutes(router)

	postJSON := func(t *testing.T, path string, payload map[string]interface{}) *httptest.ResponseRecorder {
		t.Helper()
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("RegisterIsOpaque500", func(t *testing.T) {
		w := postJSON(t, "/register", map[string]interface{}{
			"username": "alice",
			"email":    "a@x.com",
			"password": "secret",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		// Error body only: no user payload, no raw driver message
		assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("LoginIsOpaque500", func(t *testing.T) {
		w := postJSON(t, "/login", map[string]interface{}{
			"username": "alice",
			"password": "secret",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error": "internal server error"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
