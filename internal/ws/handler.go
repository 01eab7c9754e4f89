package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sketchparty/sketchparty-backend/internal/engine"
	"github.com/sketchparty/sketchparty-backend/internal/hub"
	"github.com/sketchparty/sketchparty-backend/internal/room"
	"github.com/sketchparty/sketchparty-backend/internal/types"
)

// Limits throttles chat-class messages per connection.
type Limits struct {
	ChatRate  rate.Limit
	ChatBurst int
}

func Handler(h *hub.Hub, log *zap.SugaredLogger, limits Limits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		// Stable identity for the connection's lifetime, decoupled from
		// transport internals.
		clientID := uuid.NewString()
		out := make(chan room.OutEvent, 32)
		joined := make(map[string]*room.Room)
		limiter := rate.NewLimiter(limits.ChatRate, limits.ChatBurst)

		log.Infow("client connected", "client", clientID)

		defer func() {
			for _, rm := range joined {
				rm.Send(room.Leave{PlayerID: clientID})
			}
			log.Infow("client disconnected", "client", clientID)
		}()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for {
				select {
				case <-writeCtx.Done():
					return
				case ev := <-out:
					payload, err := json.Marshal(types.FromOutEvent(ev))
					if err != nil {
						continue
					}
					ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
					_ = conn.Write(ctx, websocket.MessageText, payload)
					cancel()
				}
			}
		}()

		session := &clientSession{
			id:      clientID,
			hub:     h,
			out:     out,
			joined:  joined,
			limiter: limiter,
			log:     log,
		}

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","data":"bad json"}`))
				continue
			}

			session.dispatch(cm)
		}
	}
}

type clientSession struct {
	id      string
	hub     *hub.Hub
	out     chan room.OutEvent
	joined  map[string]*room.Room
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

func (s *clientSession) dispatch(cm types.ClientMessage) {
	switch cm.Type {
	case "createRoom":
		if cm.RoomID == "" {
			return
		}
		rm := s.hub.Ensure(cm.RoomID)
		if rm == nil {
			return
		}
		s.joined[cm.RoomID] = rm
		rm.Send(room.Create{
			Player: engine.Player{ID: s.id, Name: cm.Name, Mascot: cm.Mascot},
			Outbox: s.out,
		})

	case "joinRoom":
		if cm.RoomID == "" {
			return
		}
		rm := s.hub.Ensure(cm.RoomID)
		if rm == nil {
			return
		}
		s.joined[cm.RoomID] = rm
		rm.Send(room.Join{
			Player: engine.Player{ID: s.id, Name: cm.Name, Mascot: cm.Mascot},
			Outbox: s.out,
		})

	case "startGame":
		s.send(cm.RoomID, engine.Command{Type: engine.CmdStartGame, PlayerID: s.id})

	case "wordChosen":
		s.send(cm.RoomID, engine.Command{Type: engine.CmdChooseWord, PlayerID: s.id, Word: cm.Word})

	case "guessMessage":
		if !s.limiter.Allow() {
			s.log.Debugw("guess rate limited", "client", s.id)
			return
		}
		s.send(cm.RoomID, engine.Command{Type: engine.CmdGuess, PlayerID: s.id, Name: cm.Name, Text: cm.Text})

	case "chatMessage":
		if !s.limiter.Allow() {
			s.log.Debugw("chat rate limited", "client", s.id)
			return
		}
		s.send(cm.RoomID, engine.Command{Type: engine.CmdChat, PlayerID: s.id, Name: cm.Name, Text: cm.Text})

	case "drawing":
		s.relay(cm.RoomID, engine.EvtDrawing, cm.Data)

	case "clearCanvas":
		s.relay(cm.RoomID, engine.EvtClearCanvas, nil)

	default:
		s.log.Debugw("unknown message type", "client", s.id, "type", cm.Type)
	}
}

// send forwards a command to a room this connection has joined. Messages for
// unknown or torn-down rooms are expected stragglers and dropped.
func (s *clientSession) send(roomID string, cmd engine.Command) {
	rm, ok := s.joined[roomID]
	if !ok {
		return
	}
	rm.Send(room.FromClient{SenderID: s.id, Cmd: cmd})
}

func (s *clientSession) relay(roomID string, t engine.EventType, data json.RawMessage) {
	rm, ok := s.joined[roomID]
	if !ok {
		return
	}
	rm.Send(room.Relay{SenderID: s.id, Type: t, Data: data})
}
