package room

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/sketchparty/sketchparty-backend/internal/engine"
)

type Msg interface{ isRoomMsg() }

// Create registers the creating connection and claims host if the room is new.
type Create struct {
	Player engine.Player
	Outbox chan OutEvent
}

func (Create) isRoomMsg() {}

type Join struct {
	Player engine.Player
	Outbox chan OutEvent
}

func (Join) isRoomMsg() {}

type Leave struct{ PlayerID string }

func (Leave) isRoomMsg() {}

type FromClient struct {
	SenderID string
	Cmd      engine.Command
}

func (FromClient) isRoomMsg() {}

// Relay fans a transient payload (drawing strokes, canvas clears) out to
// everyone except the sender without touching session state.
type Relay struct {
	SenderID string
	Type     engine.EventType
	Data     json.RawMessage
}

func (Relay) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

// timer callbacks post back into the inbox carrying the generation that
// scheduled them; a stale generation makes them no-ops.
type tickMsg struct{ gen int }

func (tickMsg) isRoomMsg() {}

type advanceMsg struct{ gen int }

func (advanceMsg) isRoomMsg() {}

// OutEvent is what client outboxes receive.
type OutEvent struct {
	Room  string
	Event engine.Event
	Data  json.RawMessage
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

type Room struct {
	code    string
	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan OutEvent
	log     *zap.SugaredLogger
	onEmpty func()
	ctx     context.Context
	cancel  context.CancelFunc

	// round timer, valid only inside the loop goroutine
	timerGen  int
	remaining int
	ticking   bool
}

func NewRoom(parent context.Context, code string, initial engine.State, log *zap.SugaredLogger, onEmpty func()) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		code:    code,
		inbox:   make(chan Msg, 64),
		state:   initial,
		clients: make(map[string]chan OutEvent),
		log:     log.With("room", code),
		onEmpty: onEmpty,
		ctx:     ctx,
		cancel:  cancel,
	}

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

// Done is closed once the room has shut down; senders select on it so a
// message for a torn-down room degrades to a no-op instead of blocking.
func (r *Room) Done() <-chan struct{} { return r.ctx.Done() }

// Send delivers a message unless the room is already gone.
func (r *Room) Send(m Msg) {
	select {
	case r.inbox <- m:
	case <-r.ctx.Done():
	}
}

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Create:
				r.clients[msg.Player.ID] = msg.Outbox
				r.apply(msg.Player.ID, engine.Command{Type: engine.CmdCreate, PlayerID: msg.Player.ID})

			case Join:
				r.clients[msg.Player.ID] = msg.Outbox
				r.apply(msg.Player.ID, engine.Command{
					Type:     engine.CmdJoin,
					PlayerID: msg.Player.ID,
					Name:     msg.Player.Name,
					Mascot:   msg.Player.Mascot,
				})
				// Joiners into a running countdown get the current value.
				if r.ticking && r.state.Turn != nil && r.state.Turn.Word != "" {
					r.sendTo(msg.Player.ID, engine.Event{Type: engine.EvtTimerUpdate, Seconds: r.remaining})
				}

			case Leave:
				delete(r.clients, msg.PlayerID)
				hadPlayers := len(r.state.Players) > 0
				r.apply("", engine.Command{Type: engine.CmdLeave, PlayerID: msg.PlayerID})
				// The room dies with its last connection, or as soon as the
				// roster empties even while a created-but-not-joined
				// connection lingers; that connection's next join mints a
				// fresh room through the hub.
				if len(r.clients) == 0 || (hadPlayers && len(r.state.Players) == 0) {
					r.shutdown()
					if r.onEmpty != nil {
						r.onEmpty()
					}
					return
				}

			case FromClient:
				r.apply(msg.SenderID, msg.Cmd)

			case Relay:
				for id, ch := range r.clients {
					if id == msg.SenderID {
						continue
					}
					r.deliver(id, ch, OutEvent{Room: r.code, Event: engine.Event{Type: msg.Type}, Data: msg.Data})
				}

			case tickMsg:
				r.onTick(msg.gen)

			case advanceMsg:
				if msg.gen != r.timerGen {
					break
				}
				r.apply("", engine.Command{Type: engine.CmdAdvanceTurn})

			case GetState:
				// test-only: reflect internal state without data races
				msg.Reply <- View{
					Version:    r.version,
					NumClients: len(r.clients),
					State:      r.state,
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) apply(senderID string, cmd engine.Command) {
	events, newState, err := engine.Apply(r.state, cmd)
	if err != nil {
		if senderID != "" {
			r.sendTo(senderID, engine.Event{Type: engine.EvtError, Message: err.Error()})
		}
		return
	}

	r.state = newState
	r.version++

	for _, ev := range events {
		r.react(ev)
		if ev.Type == engine.EvtTimerStarted {
			continue
		}
		r.route(ev)
	}
}

// react performs the timer side effects an event implies.
func (r *Room) react(ev engine.Event) {
	switch ev.Type {
	case engine.EvtTimerStarted:
		r.startCountdown(ev.Seconds)
	case engine.EvtAllGuessed, engine.EvtTimeUp:
		r.stopCountdown()
		r.scheduleAdvance()
	case engine.EvtTurnStarted, engine.EvtGameOver:
		r.stopCountdown()
	}
}

func (r *Room) route(ev engine.Event) {
	switch {
	case ev.To != "":
		r.sendTo(ev.To, ev)
	case ev.Except != "":
		for id, ch := range r.clients {
			if id == ev.Except {
				continue
			}
			r.deliver(id, ch, OutEvent{Room: r.code, Event: ev})
		}
	default:
		r.broadcast(ev)
	}
}

func (r *Room) broadcast(ev engine.Event) {
	for id, ch := range r.clients {
		r.deliver(id, ch, OutEvent{Room: r.code, Event: ev})
	}
}

func (r *Room) sendTo(id string, ev engine.Event) {
	if ch, ok := r.clients[id]; ok {
		r.deliver(id, ch, OutEvent{Room: r.code, Event: ev})
	}
}

// deliver drops the client's registration when its outbox is full. The
// roster entry stays until the connection's own leave arrives; the outbox
// is shared across rooms, so it is never closed here.
func (r *Room) deliver(id string, ch chan OutEvent, out OutEvent) {
	select {
	case ch <- out:
	default:
		r.log.Warnw("dropping slow client", "player", id)
		delete(r.clients, id)
	}
}

func (r *Room) startCountdown(seconds int) {
	r.timerGen++
	r.remaining = seconds
	r.ticking = true
	r.broadcast(engine.Event{Type: engine.EvtTimerUpdate, Seconds: r.remaining})
	r.scheduleTick()
}

// stopCountdown is idempotent; bumping the generation strands every
// already-scheduled callback.
func (r *Room) stopCountdown() {
	r.ticking = false
	r.timerGen++
}

func (r *Room) scheduleTick() {
	gen := r.timerGen
	time.AfterFunc(time.Second, func() {
		r.post(tickMsg{gen: gen})
	})
}

func (r *Room) scheduleAdvance() {
	gen := r.timerGen
	grace := time.Duration(r.state.Rules.GraceSeconds) * time.Second
	time.AfterFunc(grace, func() {
		r.post(advanceMsg{gen: gen})
	})
}

func (r *Room) onTick(gen int) {
	if gen != r.timerGen || !r.ticking {
		return
	}

	r.remaining--
	r.broadcast(engine.Event{Type: engine.EvtTimerUpdate, Seconds: r.remaining})

	if r.remaining < 0 {
		r.stopCountdown()
		r.apply("", engine.Command{Type: engine.CmdTimerExpired})
		return
	}
	r.scheduleTick()
}

func (r *Room) post(m Msg) {
	select {
	case r.inbox <- m:
	case <-r.ctx.Done():
	}
}

func (r *Room) shutdown() {
	r.stopCountdown()
	clear(r.clients)
	r.cancel()
}
