package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchparty/sketchparty-backend/internal/engine"
	"github.com/sketchparty/sketchparty-backend/internal/room"
)

func TestFromOutEvent_Payloads(t *testing.T) {
	cases := []struct {
		name string
		out  room.OutEvent
		want ServerMessage
	}{
		{
			name: "youAreHost carries a bare bool",
			out:  room.OutEvent{Room: "R1", Event: engine.Event{Type: engine.EvtYouAreHost, IsHost: true}},
			want: ServerMessage{Type: "youAreHost", RoomID: "R1", Data: true},
		},
		{
			name: "timerUpdate carries seconds",
			out:  room.OutEvent{Room: "R1", Event: engine.Event{Type: engine.EvtTimerUpdate, Seconds: -1}},
			want: ServerMessage{Type: "timerUpdate", RoomID: "R1", Data: -1},
		},
		{
			name: "playerGuessed payload",
			out: room.OutEvent{Room: "R1", Event: engine.Event{
				Type: engine.EvtPlayerGuessed, Name: "Gina", Points: 100, Position: 1,
			}},
			want: ServerMessage{Type: "playerGuessed", RoomID: "R1", Data: PlayerGuessedPayload{Name: "Gina", Points: 100, Position: 1}},
		},
		{
			name: "currentDrawer flattens to the id",
			out: room.OutEvent{Room: "R1", Event: engine.Event{
				Type: engine.EvtCurrentDrawer, Drawer: engine.Player{ID: "p1", Name: "Ana"},
			}},
			want: ServerMessage{Type: "currentDrawer", RoomID: "R1", Data: "p1"},
		},
		{
			name: "revealWord carries the word",
			out:  room.OutEvent{Room: "R1", Event: engine.Event{Type: engine.EvtRevealWord, Word: "tree"}},
			want: ServerMessage{Type: "revealWord", RoomID: "R1", Data: "tree"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FromOutEvent(tc.out))
		})
	}
}

func TestFromOutEvent_RelayKeepsRawPayload(t *testing.T) {
	raw := json.RawMessage(`{"x":4,"y":2}`)
	msg := FromOutEvent(room.OutEvent{Room: "R1", Event: engine.Event{Type: engine.EvtDrawing}, Data: raw})

	require.Equal(t, "drawing", msg.Type)
	encoded, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"drawing","room_id":"R1","data":{"x":4,"y":2}}`, string(encoded))
}

func TestClientMessage_Decode(t *testing.T) {
	raw := `{"type":"joinRoom","room_id":"R1","name":"Ana","mascot":"cat"}`

	var cm ClientMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &cm))
	assert.Equal(t, "joinRoom", cm.Type)
	assert.Equal(t, "R1", cm.RoomID)
	assert.Equal(t, "Ana", cm.Name)
	assert.Equal(t, "cat", cm.Mascot)
}
