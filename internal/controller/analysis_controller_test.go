package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/minitchess-backend/internal/engine"
	"github.com/benbeisheim/minitchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

var startRows = []string{"RNBQK", "PPPPP", ".....", ".....", "ppppp", "kqbnr"}

func newTestPool(t *testing.T) *service.EnginePool {
	t.Helper()
	pool, err := service.NewEnginePool(engine.DefaultConfig(), 1)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	return pool
}

func newTestApp(t *testing.T, pool *service.EnginePool) *fiber.App {
	t.Helper()
	analysisService := service.NewAnalysisService(pool, time.Second)
	app := fiber.New()
	SetupRoutes(app,
		NewAnalysisController(analysisService),
		NewWebSocketController(analysisService),
		websocket.Config{},
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response of %s %s: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func TestNewBoardHandler(t *testing.T) {
	app := newTestApp(t, newTestPool(t))
	status, body := doJSON(t, app, http.MethodGet, "/api/board/new", nil)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	rows, ok := body["board"].([]interface{})
	if !ok || len(rows) != len(startRows) {
		t.Fatalf("expected %d rows, got %v", len(startRows), body["board"])
	}
	for i, row := range rows {
		if row != startRows[i] {
			t.Fatalf("row %d: expected %s, got %v", i, startRows[i], row)
		}
	}
}

func TestApplyMoveHandler(t *testing.T) {
	app := newTestApp(t, newTestPool(t))
	status, body := doJSON(t, app, http.MethodPost, "/api/board/apply", fiber.Map{
		"board": startRows,
		"from":  "c2",
		"to":    "c4",
	})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["notation"] != "c4" || body["opponentHasMoves"] != true || body["capturedPiece"] != nil {
		t.Fatalf("unexpected result %v", body)
	}
	rows := body["board"].([]interface{})
	if rows[1] != "PP.PP" || rows[3] != "..P.." {
		t.Fatalf("pawn did not move: %v", rows)
	}
}

func TestApplyMoveHandlerBadRequests(t *testing.T) {
	app := newTestApp(t, newTestPool(t))
	tests := []struct {
		name string
		body interface{}
	}{
		{"illegal move", fiber.Map{"board": startRows, "from": "c2", "to": "c5"}},
		{"bad square", fiber.Map{"board": startRows, "from": "z9", "to": "c4"}},
		{"missing square", fiber.Map{"board": startRows, "to": "c4"}},
		{"short board", fiber.Map{"board": startRows[:5], "from": "c2", "to": "c4"}},
		{"unknown piece", fiber.Map{"board": []string{"RNBQK", "PPXPP", ".....", ".....", "ppppp", "kqbnr"}, "from": "c2", "to": "c4"}},
		{"bad promotion", fiber.Map{"board": startRows, "from": "c2", "to": "c4", "promotion": "dragon"}},
		{"not json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, http.MethodPost, "/api/board/apply", tt.body)
			if status != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %v", status, body)
			}
			if _, ok := body["error"].(string); !ok {
				t.Fatalf("expected an error message, got %v", body)
			}
		})
	}
}

func TestPromoteHandler(t *testing.T) {
	app := newTestApp(t, newTestPool(t))
	rows := []string{".....", ".....", ".....", ".....", ".....", "P...k"}

	status, body := doJSON(t, app, http.MethodPost, "/api/board/promote", fiber.Map{
		"board": rows, "square": "a6", "piece": "knight",
	})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if got := body["board"].([]interface{})[5]; got != "N...k" {
		t.Fatalf("expected N...k, got %v", got)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/board/promote", fiber.Map{
		"board": rows, "square": "a6", "piece": "queen",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for a queen, got %d", status)
	}
}

func TestMovesHandlers(t *testing.T) {
	app := newTestApp(t, newTestPool(t))

	status, body := doJSON(t, app, http.MethodPost, "/api/moves/legal", fiber.Map{"board": startRows, "square": "c2"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if moves := body["moves"].([]interface{}); len(moves) != 2 {
		t.Fatalf("expected 2 moves for c2, got %v", moves)
	}

	status, body = doJSON(t, app, http.MethodPost, "/api/moves/all", fiber.Map{"board": startRows, "color": "white"})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if moves := body["moves"].([]interface{}); len(moves) != 12 || body["hasLegalMoves"] != true {
		t.Fatalf("expected 12 moves, got %v", body)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/moves/all", fiber.Map{"board": startRows, "color": "green"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown color, got %d", status)
	}
}

func TestBestMoveHandler(t *testing.T) {
	app := newTestApp(t, newTestPool(t))
	status, body := doJSON(t, app, http.MethodPost, "/api/engine/bestmove", fiber.Map{
		"board": startRows, "color": "white", "plyCount": 0,
	})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	move, ok := body["move"].(map[string]interface{})
	if !ok || move["from"] != "c2" || move["to"] != "c4" {
		t.Fatalf("expected c2-c4, got %v", body["move"])
	}
	if body["reason"] != string(engine.ReasonOpening) || body["notation"] != "c4" {
		t.Fatalf("unexpected analysis %v", body)
	}
}

func TestBestMoveHandlerPoolClosed(t *testing.T) {
	pool := newTestPool(t)
	app := newTestApp(t, pool)
	pool.Close()

	status, body := doJSON(t, app, http.MethodPost, "/api/engine/bestmove", fiber.Map{
		"board": startRows, "color": "black",
	})
	if status != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %v", status, body)
	}
}

func TestNotationHandler(t *testing.T) {
	app := newTestApp(t, newTestPool(t))
	rows := []string{".....", ".P...", "..p..", ".....", ".....", "....."}

	status, body := doJSON(t, app, http.MethodPost, "/api/notation", fiber.Map{
		"board": rows,
		"move":  fiber.Map{"from": "b2", "to": "c3"},
	})
	if status != fiber.StatusOK || body["notation"] != "bxc3" {
		t.Fatalf("expected bxc3, got %d %v", status, body)
	}

	status, _ = doJSON(t, app, http.MethodPost, "/api/notation", fiber.Map{})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without a move, got %d", status)
	}
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t, newTestPool(t))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/board/new", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
}
