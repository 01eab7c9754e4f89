package engine

// Phase tracks where a session is in the turn cycle.
type Phase string

const (
	PhaseLobby         Phase = "lobby"
	PhaseChoosingWord  Phase = "choosing_word"
	PhaseDrawing       Phase = "drawing"
	PhaseRoundResolved Phase = "round_resolved"
)

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Mascot string `json:"mascot"`
}

// ScoreEntry survives the player's disconnect so final rankings stay intact.
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type ChatMessage struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Turn exists only while a game is running.
type Turn struct {
	Index    int
	Word     string
	Guessed  map[string]bool
	DrawerID string
}

type Round struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type RankEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type Rules struct {
	TotalRounds  int
	TurnSeconds  int
	GraceSeconds int
	WordChoices  int
	// AutoSkipDrawerLeave advances the turn when the current drawer
	// disconnects mid-turn instead of letting the round stall.
	AutoSkipDrawerLeave bool
}

// State is the full per-room session: roster (insertion order = turn order),
// host, turn record, round counters, scores, and chat log.
type State struct {
	Phase   Phase
	Players []Player
	HostID  string
	Started bool
	Turn    *Turn
	Round   Round
	Scores  map[string]*ScoreEntry
	// ScoreOrder remembers first-join order for stable ranking tie-breaks.
	ScoreOrder []string
	Chat       []ChatMessage
	Rules      Rules
}

type CommandType string

const (
	CmdCreate       CommandType = "Create"
	CmdJoin         CommandType = "Join"
	CmdLeave        CommandType = "Leave"
	CmdStartGame    CommandType = "StartGame"
	CmdChooseWord   CommandType = "ChooseWord"
	CmdGuess        CommandType = "Guess"
	CmdChat         CommandType = "Chat"
	CmdTimerExpired CommandType = "TimerExpired"
	CmdAdvanceTurn  CommandType = "AdvanceTurn"
)

type Command struct {
	Type     CommandType
	PlayerID string
	Name     string
	Mascot   string
	Word     string
	Text     string
}

// EventType values double as outbound wire message types.
type EventType string

const (
	EvtRoomCreated    EventType = "roomCreated"
	EvtYouAreHost     EventType = "youAreHost"
	EvtPlayersUpdated EventType = "updatePlayers"
	EvtScoresUpdated  EventType = "updateScores"
	EvtChatUpdated    EventType = "updatedMessages"
	EvtWaitingToStart EventType = "waitingToStart"
	EvtGameStarted    EventType = "gameStarted"
	EvtRoundUpdate    EventType = "roundUpdate"
	EvtClearCanvas    EventType = "clearCanvas"
	EvtCurrentDrawer  EventType = "currentDrawer"
	EvtTurnStarted    EventType = "turnStarted"
	EvtWaitingForWord EventType = "waitingForWord"
	EvtWordOptions    EventType = "wordOptions"
	EvtRoundStarted   EventType = "roundStarted"
	EvtMaskedWord     EventType = "maskedWord"
	EvtDrawerWord     EventType = "drawerWord"
	EvtTimerUpdate    EventType = "timerUpdate"
	EvtPlayerGuessed  EventType = "playerGuessed"
	EvtAllGuessed     EventType = "allGuessed"
	EvtTimeUp         EventType = "timeUp"
	EvtRevealWord     EventType = "revealWord"
	EvtGameOver       EventType = "gameOver"
	EvtError          EventType = "error"

	// EvtDrawing is relay-only; strokes never touch session state.
	EvtDrawing EventType = "drawing"

	// EvtTimerStarted is consumed by the room's timer, never sent to clients.
	EvtTimerStarted EventType = "timerStarted"
)

// Event is one outbound effect of applying a command. To restricts delivery
// to a single player, Except excludes one; both empty means the whole room.
type Event struct {
	Type   EventType
	To     string
	Except string

	Players  []Player
	Scores   map[string]ScoreEntry
	Chat     []ChatMessage
	Round    *Round
	Drawer   Player
	Words    []string
	Word     string
	Masked   string
	Seconds  int
	IsHost   bool
	Name     string
	Points   int
	Position int
	Rankings []RankEntry
	Message  string
}
