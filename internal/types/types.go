package types

import (
	"encoding/json"

	"github.com/sketchparty/sketchparty-backend/internal/engine"
	"github.com/sketchparty/sketchparty-backend/internal/room"
)

// ClientMessage is every inbound frame. RoomID is explicit on every message
// so a connection can sit in several rooms at once.
type ClientMessage struct {
	Type   string          `json:"type"`
	RoomID string          `json:"room_id,omitempty"`
	Name   string          `json:"name,omitempty"`
	Mascot string          `json:"mascot,omitempty"`
	Word   string          `json:"word,omitempty"`
	Text   string          `json:"text,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// ServerMessage is every outbound frame; Data's shape depends on Type.
type ServerMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type RoomCreatedPayload struct {
	RoomID string `json:"room_id"`
}

type RoundPayload struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type TurnStartedPayload struct {
	DrawerID   string `json:"drawer_id"`
	DrawerName string `json:"drawer_name"`
}

type WaitingForWordPayload struct {
	DrawerName string `json:"drawer_name"`
}

type PlayerGuessedPayload struct {
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Position int    `json:"position"`
}

type AllGuessedPayload struct {
	Word string `json:"word"`
}

type GameOverPayload struct {
	Rankings []engine.RankEntry `json:"rankings"`
}

// FromOutEvent converts a room event into its wire form.
func FromOutEvent(out room.OutEvent) ServerMessage {
	msg := ServerMessage{Type: string(out.Event.Type), RoomID: out.Room}

	switch out.Event.Type {
	case engine.EvtRoomCreated:
		msg.Data = RoomCreatedPayload{RoomID: out.Room}
	case engine.EvtYouAreHost:
		msg.Data = out.Event.IsHost
	case engine.EvtPlayersUpdated:
		msg.Data = out.Event.Players
	case engine.EvtScoresUpdated:
		msg.Data = out.Event.Scores
	case engine.EvtChatUpdated:
		msg.Data = out.Event.Chat
	case engine.EvtRoundUpdate:
		msg.Data = RoundPayload{Current: out.Event.Round.Current, Total: out.Event.Round.Total}
	case engine.EvtCurrentDrawer:
		msg.Data = out.Event.Drawer.ID
	case engine.EvtTurnStarted:
		msg.Data = TurnStartedPayload{DrawerID: out.Event.Drawer.ID, DrawerName: out.Event.Drawer.Name}
	case engine.EvtWaitingForWord:
		msg.Data = WaitingForWordPayload{DrawerName: out.Event.Drawer.Name}
	case engine.EvtWordOptions:
		msg.Data = out.Event.Words
	case engine.EvtMaskedWord:
		msg.Data = out.Event.Masked
	case engine.EvtDrawerWord, engine.EvtRevealWord:
		msg.Data = out.Event.Word
	case engine.EvtTimerUpdate:
		msg.Data = out.Event.Seconds
	case engine.EvtPlayerGuessed:
		msg.Data = PlayerGuessedPayload{
			Name:     out.Event.Name,
			Points:   out.Event.Points,
			Position: out.Event.Position,
		}
	case engine.EvtAllGuessed:
		msg.Data = AllGuessedPayload{Word: out.Event.Word}
	case engine.EvtGameOver:
		msg.Data = GameOverPayload{Rankings: out.Event.Rankings}
	case engine.EvtError:
		msg.Data = out.Event.Message
	default:
		// relays carry their original payload through untouched
		if out.Data != nil {
			msg.Data = out.Data
		}
	}
	return msg
}
