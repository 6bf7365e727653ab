package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/criclive/config"
	"github.com/DhavalSuthar-24/criclive/internal/tournament"
	"github.com/DhavalSuthar-24/criclive/pkg/token"
)

const testJWTSecret = "test-secret"

func newTestRouter(t *testing.T, f *fixture) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	MatchRoutes(api, f.db, &config.Config{}, nil, testJWTSecret)
	return r
}

// authToken mints a token for the seeded captain of team A, who exists in the
// users table and therefore passes the middleware's liveness probe.
func authToken(t *testing.T, f *fixture) string {
	t.Helper()
	tok, err := token.GenerateJWT(f.batter.UserID, testJWTSecret, 15)
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

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func dataField(t *testing.T, body map[string]interface{}, key string) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	v, ok := data[key].(map[string]interface{})
	if !ok {
		t.Fatalf("data has no %q object: %v", key, data)
	}
	return v
}

func TestCreateMatchEndpoint(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f)
	tok := authToken(t, f)

	tourn := tournament.Tournament{Name: "Summer Cup"}
	if err := f.db.Create(&tourn).Error; err != nil {
		t.Fatalf("seed tournament: %v", err)
	}
	path := fmt.Sprintf("/api/tournaments/%d/matches", tourn.ID)
	matchDate := "2026-09-05T10:00:00Z"

	// A team cannot play against itself.
	w := doJSON(t, r, http.MethodPost, path, tok, gin.H{
		"match_date": matchDate, "team1_id": f.teamA.ID, "team2_id": f.teamA.ID,
	})
	assertEq(t, w.Code, http.StatusBadRequest)

	// Unknown tournament.
	w = doJSON(t, r, http.MethodPost, "/api/tournaments/99999/matches", tok, gin.H{
		"match_date": matchDate, "team1_id": f.teamA.ID, "team2_id": f.teamB.ID,
	})
	assertEq(t, w.Code, http.StatusNotFound)

	w = doJSON(t, r, http.MethodPost, path, tok, gin.H{
		"match_date": matchDate, "venue": "Village Green", "team1_id": f.teamA.ID, "team2_id": f.teamB.ID,
	})
	assertEq(t, w.Code, http.StatusCreated)
	m := dataField(t, decodeBody(t, w), "match")
	assertEq(t, m["status"].(string), string(StatusScheduled))
	assertEq(t, int(m["overs_limit"].(float64)), DefaultOversLimit)
	assertEq(t, int(m["wickets_limit"].(float64)), DefaultWicketsLimit)
}

func TestTossEndpoint(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f)
	tok := authToken(t, f)
	path := fmt.Sprintf("/api/matches/%d/toss", f.match.ID)

	// No token.
	w := doJSON(t, r, http.MethodPost, path, "", gin.H{"toss_winner_id": f.teamA.ID, "decision": "Bat"})
	assertEq(t, w.Code, http.StatusUnauthorized)

	// Winner outside the match.
	w = doJSON(t, r, http.MethodPost, path, tok, gin.H{"toss_winner_id": 9999, "decision": "Bat"})
	assertEq(t, w.Code, http.StatusBadRequest)

	// Decision outside the enum fails binding.
	w = doJSON(t, r, http.MethodPost, path, tok, gin.H{"toss_winner_id": f.teamA.ID, "decision": "Bowl"})
	assertEq(t, w.Code, http.StatusBadRequest)

	// Valid toss.
	w = doJSON(t, r, http.MethodPost, path, tok, gin.H{"toss_winner_id": f.teamA.ID, "decision": "Field"})
	assertEq(t, w.Code, http.StatusOK)
	m := dataField(t, decodeBody(t, w), "match")
	innings, ok := m["innings"].([]interface{})
	if !ok || len(innings) != 2 {
		t.Fatalf("expected 2 innings in payload, got %v", m["innings"])
	}
	first := innings[0].(map[string]interface{})
	// Winner fields; loser bats first on a Field decision.
	assertEq(t, uint(first["batting_team_id"].(float64)), f.teamB.ID)

	// Repeat toss conflicts.
	w = doJSON(t, r, http.MethodPost, path, tok, gin.H{"toss_winner_id": f.teamB.ID, "decision": "Bat"})
	assertEq(t, w.Code, http.StatusConflict)
}

func TestScoreEndpoint(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f)
	tok := authToken(t, f)
	m := f.toss(t, f.teamA.ID, DecisionBat)
	path := fmt.Sprintf("/api/matches/%d/score", f.match.ID)

	// Negative runs fail validation.
	w := doJSON(t, r, http.MethodPost, path, tok, gin.H{
		"inning_id": m.Innings[0].ID, "batsman_id": f.batter.ID, "bowler_id": f.bowler.ID,
		"runs_scored": -1,
	})
	assertEq(t, w.Code, http.StatusBadRequest)

	w = doJSON(t, r, http.MethodPost, path, tok, gin.H{
		"inning_id": m.Innings[0].ID, "batsman_id": f.batter.ID, "bowler_id": f.bowler.ID,
		"runs_scored": 4,
	})
	assertEq(t, w.Code, http.StatusCreated)
	body := decodeBody(t, w)
	delivery := dataField(t, body, "delivery")
	assertEq(t, int(delivery["runs_scored"].(float64)), 4)
	updated := dataField(t, body, "match")
	assertEq(t, updated["status"].(string), string(StatusLive))

	// An inning from another match is rejected without touching state.
	other := &Match{
		MatchDate: f.match.MatchDate, Status: StatusScheduled,
		Team1ID: f.teamA.ID, Team2ID: f.teamB.ID,
		OversLimit: DefaultOversLimit, WicketsLimit: DefaultWicketsLimit,
	}
	if err := f.repo.CreateMatch(other); err != nil {
		t.Fatalf("seed second match: %v", err)
	}
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/matches/%d/score", other.ID), tok, gin.H{
		"inning_id": m.Innings[0].ID, "batsman_id": f.batter.ID, "bowler_id": f.bowler.ID,
		"runs_scored": 1,
	})
	assertEq(t, w.Code, http.StatusBadRequest)
	inning, _ := f.repo.GetInningByID(m.Innings[0].ID)
	assertEq(t, inning.TotalRuns, 4)
}

func TestGetMatchEndpoint(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/matches/%d", f.match.ID), "", nil)
	assertEq(t, w.Code, http.StatusOK)
	m := dataField(t, decodeBody(t, w), "match")
	assertEq(t, m["status"].(string), string(StatusScheduled))
	assertEq(t, uint(m["team1_id"].(float64)), f.teamA.ID)

	w = doJSON(t, r, http.MethodGet, "/api/matches/99999", "", nil)
	assertEq(t, w.Code, http.StatusNotFound)
}

func TestOverrideStatusEndpoint(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(t, f)
	tok := authToken(t, f)
	path := fmt.Sprintf("/api/admin/matches/%d/override-status", f.match.ID)

	w := doJSON(t, r, http.MethodPost, path, tok, gin.H{"status": "Abandoned"})
	assertEq(t, w.Code, http.StatusOK)
	assertEq(t, f.reload(t).Status, StatusAbandoned)

	w = doJSON(t, r, http.MethodPost, path, tok, gin.H{"status": "Rained Off"})
	assertEq(t, w.Code, http.StatusBadRequest)
}
