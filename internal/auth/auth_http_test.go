package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/criclive/config"
	"github.com/DhavalSuthar-24/criclive/internal/user"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &user.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.AccessTokenSecret = "test-access-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 15
	cfg.JWT.RefreshTokenSecret = "test-refresh-secret"
	cfg.JWT.RefreshTokenExpiryDays = 7

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAuthRoutes(r.Group("/api"), db, cfg)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeAuth(t *testing.T, w *httptest.ResponseRecorder) AuthResponse {
	t.Helper()
	var out AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestRegisterLoginFlow(t *testing.T) {
	r := newTestRouter(t)

	// Short password fails validation.
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "carol@example.com", "full_name": "Carol", "password": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "carol@example.com", "full_name": "Carol", "password": "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeAuth(t, w)
	if created.AccessToken == "" || created.RefreshToken == "" {
		t.Fatal("registration must return both tokens")
	}
	if created.User.Email != "carol@example.com" {
		t.Fatalf("unexpected user in response: %+v", created.User)
	}

	// Duplicate email.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "carol@example.com", "password": "another-pass",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	// Wrong password.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "carol@example.com", "password": "wrong-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "carol@example.com", "password": "correct-horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	logged := decodeAuth(t, w)

	// The access token opens the profile route.
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", logged.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var profile UserResponse
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.FullName != "Carol" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	// Refresh rotation issues a fresh pair.
	w = doJSON(t, r, http.MethodPost, "/api/auth/refresh-token", "", gin.H{
		"refresh_token": logged.RefreshToken,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	rotated := decodeAuth(t, w)
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Fatal("rotation must return both tokens")
	}

	// Logout revokes every session; the rotated refresh token dies with it.
	w = doJSON(t, r, http.MethodPost, "/api/auth/logout", rotated.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/refresh-token", "", gin.H{
		"refresh_token": rotated.RefreshToken,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
