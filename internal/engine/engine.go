package engine

import (
	"errors"
	"sort"
	"strings"

	"github.com/sketchparty/sketchparty-backend/internal/words"
)

var ErrNotHost = errors.New("only the host can start the game")
var ErrNotEnoughPlayers = errors.New("need at least 2 players to start")
var ErrAlreadyStarted = errors.New("game already started")
var ErrUnsupportedCommand = errors.New("unsupported command")

// chooseWordOptions is swappable so tests can pin the offered words.
var chooseWordOptions = words.Options

// Apply runs one command against the session state and returns the outbound
// events it produced. State is never mutated on error. The caller is
// responsible for serializing calls per room.
func Apply(s State, cmd Command) ([]Event, State, error) {
	switch cmd.Type {
	case CmdCreate:
		return applyCreate(s, cmd)
	case CmdJoin:
		return applyJoin(s, cmd)
	case CmdLeave:
		return applyLeave(s, cmd)
	case CmdStartGame:
		return applyStartGame(s, cmd)
	case CmdChooseWord:
		return applyChooseWord(s, cmd)
	case CmdGuess:
		return applyGuess(s, cmd)
	case CmdChat:
		events, ns := appendChat(s, cmd.Name, cmd.Text)
		return events, ns, nil
	case CmdTimerExpired:
		return applyTimerExpired(s)
	case CmdAdvanceTurn:
		return applyAdvanceTurn(s)
	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func applyCreate(s State, cmd Command) ([]Event, State, error) {
	newState := s
	if newState.HostID == "" && len(newState.Players) == 0 {
		newState.HostID = cmd.PlayerID
	}

	events := []Event{
		{Type: EvtRoomCreated, To: cmd.PlayerID},
		{Type: EvtYouAreHost, To: cmd.PlayerID, IsHost: newState.HostID == cmd.PlayerID},
	}
	return events, newState, nil
}

func applyJoin(s State, cmd Command) ([]Event, State, error) {
	newState := s
	if newState.HostID == "" && len(newState.Players) == 0 {
		newState.HostID = cmd.PlayerID
	}

	if !hasPlayer(newState, cmd.PlayerID) {
		newState.Players = append(newState.Players, Player{
			ID:     cmd.PlayerID,
			Name:   cmd.Name,
			Mascot: cmd.Mascot,
		})
		if _, ok := newState.Scores[cmd.PlayerID]; !ok {
			newState.Scores[cmd.PlayerID] = &ScoreEntry{Name: cmd.Name}
			newState.ScoreOrder = append(newState.ScoreOrder, cmd.PlayerID)
		}
	}

	events := []Event{
		{Type: EvtYouAreHost, To: cmd.PlayerID, IsHost: newState.HostID == cmd.PlayerID},
	}

	// Point-in-time snapshot for a joiner while a game is live. The room's
	// timer appends the current countdown value itself.
	if newState.Started && newState.Turn != nil {
		drawer := newState.Players[newState.Turn.Index]
		events = append(events, Event{Type: EvtCurrentDrawer, To: cmd.PlayerID, Drawer: drawer})
		if newState.Turn.Word != "" {
			events = append(events, Event{Type: EvtMaskedWord, To: cmd.PlayerID, Masked: MaskWord(newState.Turn.Word)})
		} else {
			events = append(events, Event{Type: EvtWaitingForWord, To: cmd.PlayerID, Drawer: drawer})
		}
	} else {
		events = append(events, Event{Type: EvtWaitingToStart, To: cmd.PlayerID})
	}

	events = append(events,
		Event{Type: EvtPlayersUpdated, Players: snapshotPlayers(newState)},
		Event{Type: EvtScoresUpdated, Scores: snapshotScores(newState)},
		Event{Type: EvtChatUpdated, To: cmd.PlayerID, Chat: newState.Chat},
	)
	return events, newState, nil
}

func applyLeave(s State, cmd Command) ([]Event, State, error) {
	if !hasPlayer(s, cmd.PlayerID) {
		// A creating connection can hold host without a roster entry; its
		// departure still hands the host off so the room stays startable.
		if s.HostID != cmd.PlayerID {
			return nil, s, nil
		}
		newState := s
		if len(newState.Players) == 0 {
			newState.HostID = ""
			return nil, newState, nil
		}
		newState.HostID = newState.Players[0].ID
		return []Event{{Type: EvtYouAreHost, To: newState.HostID, IsHost: true}}, newState, nil
	}

	newState := s
	idx := playerIndex(newState, cmd.PlayerID)
	newState.Players = append(append([]Player{}, newState.Players[:idx]...), newState.Players[idx+1:]...)

	var events []Event
	wasDrawer := false

	if newState.Started && newState.Turn != nil {
		delete(newState.Turn.Guessed, cmd.PlayerID)
		wasDrawer = newState.Turn.DrawerID == cmd.PlayerID
		if idx < newState.Turn.Index {
			// Keep the turn pointing at the same drawer.
			newState.Turn.Index--
		}
		if !wasDrawer && newState.Turn.Index >= len(newState.Players) && len(newState.Players) > 0 {
			newState.Turn.Index = 0
		}
	}

	if newState.HostID == cmd.PlayerID && len(newState.Players) > 0 {
		newState.HostID = newState.Players[0].ID
		events = append(events, Event{Type: EvtYouAreHost, To: newState.HostID, IsHost: true})
	}

	events = append(events,
		Event{Type: EvtPlayersUpdated, Players: snapshotPlayers(newState)},
		Event{Type: EvtScoresUpdated, Scores: snapshotScores(newState)},
	)

	if len(newState.Players) == 0 {
		return events, newState, nil
	}

	if newState.Started && newState.Turn != nil && wasDrawer {
		if newState.Rules.AutoSkipDrawerLeave {
			// Removal already shifted the roster, so the current index is
			// the next drawer.
			events = append(events, startTurn(&newState)...)
		} else if newState.Turn.Index >= len(newState.Players) {
			newState.Turn.Index = 0
		}
	}

	return events, newState, nil
}

func applyStartGame(s State, cmd Command) ([]Event, State, error) {
	if s.HostID != cmd.PlayerID {
		return nil, s, ErrNotHost
	}
	if len(s.Players) < 2 {
		return nil, s, ErrNotEnoughPlayers
	}
	if s.Started {
		return nil, s, ErrAlreadyStarted
	}

	newState := s
	newState.Started = true
	newState.Round.Current = 1
	newState.Turn = &Turn{Index: 0, Guessed: map[string]bool{}}

	events := []Event{
		{Type: EvtGameStarted},
		{Type: EvtRoundUpdate, Round: &Round{Current: newState.Round.Current, Total: newState.Round.Total}},
	}
	events = append(events, startTurn(&newState)...)
	return events, newState, nil
}

func applyChooseWord(s State, cmd Command) ([]Event, State, error) {
	// Non-drawer and out-of-phase attempts are dropped, not errors.
	if !s.Started || s.Turn == nil || s.Phase != PhaseChoosingWord {
		return nil, s, nil
	}
	if s.Turn.DrawerID != cmd.PlayerID {
		return nil, s, nil
	}

	newState := s
	newState.Phase = PhaseDrawing
	newState.Turn.Word = cmd.Word
	newState.Turn.Guessed = map[string]bool{}

	events := []Event{
		{Type: EvtRoundStarted},
		{Type: EvtMaskedWord, Except: cmd.PlayerID, Masked: MaskWord(cmd.Word)},
		{Type: EvtDrawerWord, To: cmd.PlayerID, Word: cmd.Word},
		{Type: EvtTimerStarted, Seconds: newState.Rules.TurnSeconds},
	}
	return events, newState, nil
}

func applyGuess(s State, cmd Command) ([]Event, State, error) {
	// Outside a drawing phase a guess is just chat.
	if !s.Started || s.Turn == nil || s.Phase != PhaseDrawing {
		events, ns := appendChat(s, cmd.Name, cmd.Text)
		return events, ns, nil
	}

	if cmd.PlayerID == s.Turn.DrawerID {
		return nil, s, nil
	}

	if s.Turn.Guessed[cmd.PlayerID] {
		events, ns := appendChat(s, cmd.Name, cmd.Text)
		return events, ns, nil
	}

	word := s.Turn.Word
	if word == "" || !guessMatches(cmd.Text, word) {
		events, ns := appendChat(s, cmd.Name, cmd.Text)
		return events, ns, nil
	}

	newState := s
	position := len(newState.Turn.Guessed)
	newState.Turn.Guessed[cmd.PlayerID] = true

	points := PointsForGuess(position)
	if entry, ok := newState.Scores[cmd.PlayerID]; ok {
		entry.Score += points
	}
	if entry, ok := newState.Scores[newState.Turn.DrawerID]; ok {
		entry.Score += DrawerBonus
	}

	events := []Event{
		{Type: EvtPlayerGuessed, Name: cmd.Name, Points: points, Position: position + 1},
		{Type: EvtScoresUpdated, Scores: snapshotScores(newState)},
	}

	// Round resolves once every non-drawer has guessed.
	if len(newState.Turn.Guessed) >= len(newState.Players)-1 {
		newState.Phase = PhaseRoundResolved
		events = append(events, Event{Type: EvtAllGuessed, Word: word})
	}
	return events, newState, nil
}

func applyTimerExpired(s State) ([]Event, State, error) {
	if !s.Started || s.Turn == nil || s.Phase != PhaseDrawing {
		return nil, s, nil
	}

	newState := s
	newState.Phase = PhaseRoundResolved

	events := []Event{{Type: EvtTimeUp}}
	if newState.Turn.Word != "" {
		events = append(events, Event{Type: EvtRevealWord, Word: newState.Turn.Word})
	}
	return events, newState, nil
}

func applyAdvanceTurn(s State) ([]Event, State, error) {
	if !s.Started || s.Turn == nil {
		return nil, s, nil
	}

	newState := s
	newState.Turn.Index++
	events := startTurn(&newState)
	return events, newState, nil
}

// startTurn enters the choosing-word phase for the player at the current
// turn index, wrapping the index and advancing the round counter when the
// rotation completes. It flips to game over when the final round is done.
func startTurn(s *State) []Event {
	if s.Turn == nil || len(s.Players) == 0 {
		return nil
	}

	var events []Event

	if s.Turn.Index >= len(s.Players) {
		s.Turn.Index = 0
		s.Round.Current++
		if s.Round.Current > s.Round.Total {
			return endGame(s)
		}
		events = append(events, Event{Type: EvtRoundUpdate, Round: &Round{Current: s.Round.Current, Total: s.Round.Total}})
	}

	drawer := s.Players[s.Turn.Index]
	s.Phase = PhaseChoosingWord
	s.Turn.Word = ""
	s.Turn.Guessed = map[string]bool{}
	s.Turn.DrawerID = drawer.ID

	events = append(events,
		Event{Type: EvtClearCanvas},
		Event{Type: EvtCurrentDrawer, Drawer: drawer},
		Event{Type: EvtTurnStarted, Drawer: drawer},
		Event{Type: EvtWaitingForWord, Drawer: drawer},
		Event{Type: EvtWordOptions, To: drawer.ID, Words: chooseWordOptions(s.Rules.WordChoices)},
	)
	return events
}

// endGame broadcasts final rankings and resets the session to the lobby,
// keeping player identities (and score entries) for a rematch.
func endGame(s *State) []Event {
	rankings := make([]RankEntry, 0, len(s.ScoreOrder))
	for _, id := range s.ScoreOrder {
		entry := s.Scores[id]
		rankings = append(rankings, RankEntry{ID: id, Name: entry.Name, Score: entry.Score})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})

	s.Phase = PhaseLobby
	s.Started = false
	s.Turn = nil
	s.Round.Current = 0
	for _, entry := range s.Scores {
		entry.Score = 0
	}

	return []Event{{Type: EvtGameOver, Rankings: rankings}}
}

func appendChat(s State, name, text string) ([]Event, State) {
	newState := s
	newState.Chat = append(newState.Chat, ChatMessage{Name: name, Text: text})
	return []Event{{Type: EvtChatUpdated, Chat: newState.Chat}}, newState
}

func guessMatches(text, word string) bool {
	return strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(word))
}
