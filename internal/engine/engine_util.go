package engine

import (
	"strings"
	"unicode/utf8"
)

func NewState(rules Rules) State {
	return State{
		Phase:   PhaseLobby,
		Players: []Player{},
		Round:   Round{Current: 0, Total: rules.TotalRounds},
		Scores:  map[string]*ScoreEntry{},
		Chat:    []ChatMessage{},
		Rules:   rules,
	}
}

// MaskWord renders one blank per character of the secret word.
func MaskWord(word string) string {
	return strings.Repeat("_ ", utf8.RuneCountInString(word))
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func FindEvent(events []Event, eventType EventType) (Event, bool) {
	for _, event := range events {
		if event.Type == eventType {
			return event, true
		}
	}
	return Event{}, false
}

func hasPlayer(s State, id string) bool {
	return playerIndex(s, id) >= 0
}

func playerIndex(s State, id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func snapshotPlayers(s State) []Player {
	out := make([]Player, len(s.Players))
	copy(out, s.Players)
	return out
}

func snapshotScores(s State) map[string]ScoreEntry {
	out := make(map[string]ScoreEntry, len(s.Scores))
	for id, entry := range s.Scores {
		out[id] = *entry
	}
	return out
}
