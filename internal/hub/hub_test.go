package hub

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sketchparty/sketchparty-backend/internal/engine"
	"github.com/sketchparty/sketchparty-backend/internal/room"
)

func testRules() engine.Rules {
	return engine.Rules{TotalRounds: 3, TurnSeconds: 60, GraceSeconds: 1, WordChoices: 3, AutoSkipDrawerLeave: true}
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, testRules(), zap.NewNop().Sugar())
}

func TestHub_EnsureThenGet_SamePointer(t *testing.T) {
	h := newTestHub(t)

	rm1 := h.Ensure("ZED123")
	rm2 := h.Get("ZED123")

	if rm1 == nil || rm2 == nil || rm1 != rm2 {
		t.Fatalf("expected same room pointer")
	}

	rm3 := h.Ensure("ZED123")
	if rm3 != rm1 {
		t.Fatalf("ensure must not replace an existing room")
	}
}

func TestHub_GetUnknownIsNil(t *testing.T) {
	h := newTestHub(t)
	if h.Get("NOPE") != nil {
		t.Fatalf("unknown code must resolve to nil")
	}
}

func TestHub_EmptiedRoomIsRemoved(t *testing.T) {
	h := newTestHub(t)
	rm := h.Ensure("ZED123")

	out := make(chan room.OutEvent, 64)
	rm.Send(room.Join{Player: engine.Player{ID: "p1", Name: "Ana"}, Outbox: out})
	rm.Send(room.Leave{PlayerID: "p1"})

	deadline := time.After(2 * time.Second)
	for {
		if h.Get("ZED123") == nil {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("emptied room still registered")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestHub_ShutdownStopsRooms(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, testRules(), zap.NewNop().Sugar())
	rm := h.Ensure("ZED123")

	h.Inbox() <- ShutdownHub{}

	select {
	case <-rm.Done():
	case <-time.After(time.Second):
		t.Fatalf("hub shutdown must stop its rooms")
	}
}
