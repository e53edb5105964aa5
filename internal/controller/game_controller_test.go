package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/search"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	autoplayer := service.NewAutoplayer(search.NewSearcher(1))
	t.Cleanup(autoplayer.Wait)
	gameService := service.NewGameService(service.NewGameManager(autoplayer), 1, 3)

	app := fiber.New()
	SetupRoutes(app, NewGameController(gameService), NewWebSocketController(gameService), nil)
	return app
}

type response struct {
	status int
	body   map[string]interface{}
}

func do(t *testing.T, app *fiber.App, method, path, playerID, body string) response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if playerID != "" {
		req.Header.Set("X-Player-ID", playerID)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := response{status: resp.StatusCode}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out.body); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, data, err)
		}
	}
	return out
}

func createGame(t *testing.T, app *fiber.App, playerID, body string) string {
	t.Helper()
	resp := do(t, app, fiber.MethodPost, "/api/game/", playerID, body)
	if resp.status != fiber.StatusCreated {
		t.Fatalf("create: status %d %v", resp.status, resp.body)
	}
	id, _ := resp.body["gameId"].(string)
	if id == "" {
		t.Fatalf("create: no game ID in %v", resp.body)
	}
	return id
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp(t)
	resp := do(t, app, fiber.MethodPost, "/api/game/", "", "")
	if resp.status != fiber.StatusUnauthorized {
		t.Fatalf("status %d, want 401", resp.status)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/api/game/?playerId=p1", nil)
	r, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if r.StatusCode != fiber.StatusCreated {
		t.Fatalf("query player ID: status %d", r.StatusCode)
	}
}

func TestGameLifecycle(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app, "p1", `{"mode":"human"}`)
	base := "/api/game/" + id

	state := do(t, app, fiber.MethodGet, base, "p2", "")
	if state.status != fiber.StatusOK || state.body["toMove"] != "black" || state.body["mode"] != "human" {
		t.Fatalf("state: %d %v", state.status, state.body)
	}

	moves := do(t, app, fiber.MethodGet, base+"/moves/g8", "p1", "")
	if list, _ := moves.body["moves"].([]interface{}); moves.status != fiber.StatusOK || len(list) != 2 {
		t.Fatalf("moves: %d %v", moves.status, moves.body)
	}
	empty := do(t, app, fiber.MethodGet, base+"/moves/e4", "p1", "")
	if list, ok := empty.body["moves"].([]interface{}); !ok || len(list) != 0 {
		t.Fatalf("empty square moves: %v", empty.body)
	}

	moved := do(t, app, fiber.MethodPost, base+"/move", "p1", `{"from":"e7","to":"e5"}`)
	if moved.status != fiber.StatusOK || moved.body["turn"] != float64(1) || moved.body["toMove"] != "white" {
		t.Fatalf("move: %d %v", moved.status, moved.body)
	}

	tests := []struct {
		name     string
		playerID string
		body     string
		status   int
	}{
		{"illegal", "p1", `{"from":"e2","to":"e5"}`, fiber.StatusBadRequest},
		{"bad square", "p1", `{"from":"k2","to":"e4"}`, fiber.StatusBadRequest},
		{"not owner", "p2", `{"from":"e2","to":"e4"}`, fiber.StatusForbidden},
		{"malformed", "p1", `{"from":`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, fiber.MethodPost, base+"/move", tt.playerID, tt.body)
			if resp.status != tt.status {
				t.Fatalf("status %d, want %d (%v)", resp.status, tt.status, resp.body)
			}
		})
	}

	reset := do(t, app, fiber.MethodPost, base+"/reset", "p1", "")
	if reset.status != fiber.StatusOK || reset.body["turn"] != float64(0) {
		t.Fatalf("reset: %d %v", reset.status, reset.body)
	}

	if resp := do(t, app, fiber.MethodDelete, base, "p2", ""); resp.status != fiber.StatusForbidden {
		t.Fatalf("foreign delete: status %d", resp.status)
	}
	if resp := do(t, app, fiber.MethodDelete, base, "p1", ""); resp.status != fiber.StatusNoContent {
		t.Fatalf("delete: status %d", resp.status)
	}
	if resp := do(t, app, fiber.MethodGet, base, "p1", ""); resp.status != fiber.StatusNotFound {
		t.Fatalf("deleted game: status %d", resp.status)
	}
}

func TestGameOverConflict(t *testing.T) {
	app := newTestApp(t)
	id := createGame(t, app, "p1", "")
	base := "/api/game/" + id
	for _, m := range []string{
		`{"from":"f7","to":"f6"}`, `{"from":"e2","to":"e4"}`,
		`{"from":"g7","to":"g5"}`, `{"from":"d1","to":"h5"}`,
	} {
		if resp := do(t, app, fiber.MethodPost, base+"/move", "p1", m); resp.status != fiber.StatusOK {
			t.Fatalf("move %s: %d %v", m, resp.status, resp.body)
		}
	}
	state := do(t, app, fiber.MethodGet, base, "p1", "")
	status, _ := state.body["status"].(map[string]interface{})
	if status["state"] != "checkmate" || status["player"] != "black" {
		t.Fatalf("status = %v", status)
	}
	if resp := do(t, app, fiber.MethodPost, base+"/move", "p1", `{"from":"a7","to":"a6"}`); resp.status != fiber.StatusConflict {
		t.Fatalf("move after mate: status %d", resp.status)
	}
}

func TestCreateGameValidation(t *testing.T) {
	app := newTestApp(t)
	if resp := do(t, app, fiber.MethodPost, "/api/game/", "p1", `{"mode":"solo"}`); resp.status != fiber.StatusBadRequest {
		t.Fatalf("unknown mode: status %d", resp.status)
	}
	if resp := do(t, app, fiber.MethodPost, "/api/game/", "p1", `{"depth":7}`); resp.status != fiber.StatusBadRequest {
		t.Fatalf("deep search: status %d", resp.status)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(fiber.MethodGet, "/ws/game/abc", nil)
	req.Header.Set("X-Player-ID", "p1")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("status %d, want 426", resp.StatusCode)
	}
}

func TestOwnershipSurvivesLaterRequests(t *testing.T) {
	app := newTestApp(t)
	for i := 0; i < 10; i++ {
		id := createGame(t, app, "owner-1", `{"mode":"human"}`)
		base := "/api/game/" + id
		for j := 0; j < 5; j++ {
			if resp := do(t, app, fiber.MethodGet, base, "intruder", ""); resp.status != fiber.StatusOK {
				t.Fatalf("round %d: watcher GET status %d", i, resp.status)
			}
		}
		if resp := do(t, app, fiber.MethodPost, base+"/move", "intruder", `{"from":"e7","to":"e5"}`); resp.status != fiber.StatusForbidden {
			t.Fatalf("round %d: non-owner move status %d, want 403", i, resp.status)
		}
		if resp := do(t, app, fiber.MethodPost, base+"/reset", "intruder", ""); resp.status != fiber.StatusForbidden {
			t.Fatalf("round %d: non-owner reset status %d, want 403", i, resp.status)
		}
		if resp := do(t, app, fiber.MethodPost, base+"/move", "owner-1", `{"from":"e7","to":"e5"}`); resp.status != fiber.StatusOK {
			t.Fatalf("round %d: owner move status %d %v", i, resp.status, resp.body)
		}
	}
}
