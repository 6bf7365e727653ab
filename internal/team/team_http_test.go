package team

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	"github.com/DhavalSuthar-24/criclive/pkg/token"
)

const testJWTSecret = "test-secret"

func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &Team{}, &Player{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	TeamRoutes(r.Group("/api"), db, &config.Config{}, testJWTSecret)
	return r, db
}

func seedUser(t *testing.T, db *gorm.DB, email string) user.User {
	t.Helper()
	u := user.User{Email: email, FullName: email}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func tokenFor(t *testing.T, u user.User) string {
	t.Helper()
	tok, err := token.GenerateJWT(u.ID, testJWTSecret, 15)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
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

func TestCreateTeamAssignsCaptain(t *testing.T) {
	r, db := newTestEnv(t)
	alice := seedUser(t, db, "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/teams", tokenFor(t, alice), gin.H{"name": "Avengers"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created Team
	if err := db.Where("name = ?", "Avengers").First(&created).Error; err != nil {
		t.Fatalf("team not persisted: %v", err)
	}
	if created.CaptainID != alice.ID {
		t.Fatalf("creator must become captain, got %d", created.CaptainID)
	}

	// Anonymous creation is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/teams", "", gin.H{"name": "Blasters"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAddPlayerCaptainOnly(t *testing.T) {
	r, db := newTestEnv(t)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	team := Team{Name: "Avengers", CaptainID: alice.ID}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("seed team: %v", err)
	}
	path := fmt.Sprintf("/api/teams/%d/players", team.ID)

	// Bob is not the captain.
	w := doJSON(t, r, http.MethodPost, path, tokenFor(t, bob), gin.H{
		"user_id": bob.ID, "team_id": team.ID, "role": "Bowler",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}

	// Payload pointing at a different team.
	w = doJSON(t, r, http.MethodPost, path, tokenFor(t, alice), gin.H{
		"user_id": bob.ID, "team_id": team.ID + 1, "role": "Bowler",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// Unknown role fails the enum.
	w = doJSON(t, r, http.MethodPost, path, tokenFor(t, alice), gin.H{
		"user_id": bob.ID, "team_id": team.ID, "role": "Twelfth Man",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, path, tokenFor(t, alice), gin.H{
		"user_id": bob.ID, "team_id": team.ID, "role": "Bowler",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var p Player
	if err := db.Where("team_id = ? AND user_id = ?", team.ID, bob.ID).First(&p).Error; err != nil {
		t.Fatalf("player not persisted: %v", err)
	}
	if p.Role != RoleBowler {
		t.Fatalf("expected Bowler, got %s", p.Role)
	}

	// Adding to a missing team 404s.
	w = doJSON(t, r, http.MethodPost, "/api/teams/99999/players", tokenFor(t, alice), gin.H{
		"user_id": bob.ID, "team_id": 99999, "role": "Bowler",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
