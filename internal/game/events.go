package game

import "strconv"

// EventType classifies a battle event.
type EventType string

// Battle events, recorded for history and replays.
const (
	EventDeploy   EventType = "deploy"
	EventRemove   EventType = "remove"
	EventBoost    EventType = "boost"
	EventDiscover EventType = "discover"
	EventKill     EventType = "kill"
	EventDrown    EventType = "drown"
	EventSwallow  EventType = "swallow"
	EventDigest   EventType = "digest"
	EventWave     EventType = "wave"
	EventTurnEnd  EventType = "turn_end"
	EventOutcome  EventType = "outcome"
)

// Event is one thing that happened during a game.
type Event struct {
	Turn    int
	Type    EventType
	Place   string
	Insect  string
	Message string
}

// Recorder receives battle events as they happen.
type Recorder interface {
	Record(Event)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(Event)

// Record calls f(e).
func (f RecorderFunc) Record(e Event) {
	f(e)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
