package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/sketchparty/sketchparty-backend/internal/engine"
	"github.com/sketchparty/sketchparty-backend/internal/room"
)

type HubMsg interface{ isHubMsg() }

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

// EnsureRoom returns the existing room or lazily creates one.
type EnsureRoom struct {
	Code  string
	Reply chan *room.Room
}

type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

func (GetRoom) isHubMsg()     {}
func (EnsureRoom) isHubMsg()  {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	rules  engine.Rules
	log    *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, rules engine.Rules, log *zap.SugaredLogger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		rules:  rules,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Ensure is a convenience wrapper around the EnsureRoom message. It returns
// nil once the hub has shut down.
func (h *Hub) Ensure(code string) *room.Room {
	reply := make(chan *room.Room, 1)
	select {
	case h.inbox <- EnsureRoom{Code: code, Reply: reply}:
		return <-reply
	case <-h.ctx.Done():
		return nil
	}
}

// Get returns the room for code, or nil.
func (h *Hub) Get(code string) *room.Room {
	reply := make(chan *room.Room, 1)
	select {
	case h.inbox <- GetRoom{Code: code, Reply: reply}:
		return <-reply
	case <-h.ctx.Done():
		return nil
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case EnsureRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					msg.Reply <- rm
					break
				}

				code := msg.Code
				rm := room.NewRoom(h.ctx, code, engine.NewState(h.rules), h.log, func() {
					// Runs on the room goroutine after it has emptied and
					// shut itself down.
					select {
					case h.inbox <- RemoveRoom{Code: code}:
					case <-h.ctx.Done():
					}
				})
				h.rooms[code] = rm
				h.log.Infow("room created", "room", code)
				msg.Reply <- rm

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // may be nil

			case RemoveRoom:
				delete(h.rooms, msg.Code)
				h.log.Infow("room removed", "room", msg.Code)

			case ShutdownHub:
				for _, rm := range h.rooms {
					rm.Inbox() <- room.Shutdown{}
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}
