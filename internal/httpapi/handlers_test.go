package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/sketchparty/sketchparty-backend/internal/engine"
	"github.com/sketchparty/sketchparty-backend/internal/hub"
	"github.com/sketchparty/sketchparty-backend/internal/ws"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := hub.NewHub(ctx, engine.Rules{TotalRounds: 3, TurnSeconds: 80, GraceSeconds: 3, WordChoices: 3}, zap.NewNop().Sugar())
	return SetupRoutes(h, zap.NewNop().Sugar(), ws.Limits{ChatRate: 10, ChatBurst: 20})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
}

func TestNewRoomCode(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/rooms", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d", rec.Code)
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(body.Code) != 6 {
		t.Fatalf("want 6-char code, got %q", body.Code)
	}
}

func TestGenerateCode_Charset(t *testing.T) {
	code, err := GenerateCode()
	if err != nil {
		t.Fatalf("unexpected err %v", err)
	}
	for _, c := range code {
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			t.Fatalf("unexpected character %q in code %q", c, code)
		}
	}
}
