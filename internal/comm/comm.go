package comm

import (
	"encoding/json"
	"time"
)

// Event types published after a write commits.
const (
	PlayerRegistered     = "player.registered"
	PlayerRenamed        = "player.renamed"
	PlayerRemoved        = "player.removed"
	GameRecorded         = "game.recorded"
	GameUpdated          = "game.updated"
	GameDeleted          = "game.deleted"
	TeamChoiceRegistered = "teamchoice.registered"
)

// Event is the envelope sent over NATS and the websocket feed.
type Event struct {
	Type string          `json:"type"` // e.g. "game.recorded"
	Data json.RawMessage `json:"data"`
	At   time.Time       `json:"at"`
}

func NewEvent(eventType string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Data: raw, At: time.Now().UTC()}, nil
}

type PlayerData struct {
	ID       string `json:"id"`
	NickName string `json:"nickName,omitempty"`
}

type GameRef struct {
	ID string `json:"id"`
}
