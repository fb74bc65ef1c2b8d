package models

// TeamInGame is one side of a game. PlayerTwoID is nil for solo slots.
type TeamInGame struct {
	ID           string    `json:"id"`
	GameID       string    `json:"gameId"`
	Side         Side      `json:"side"`
	TeamSelect   string    `json:"teamSelect"` // display name
	Score        int       `json:"score"`
	ResultTag    ResultTag `json:"resultTag"`
	PlayerOneID  string    `json:"playerOneId"`
	PlayerTwoID  *string   `json:"playerTwoId"`
	TeamChoiceID *string   `json:"teamChoiceId"`
}

func (t *TeamInGame) HasPlayer(playerID string) bool {
	if playerID == "" {
		return false
	}
	if t.PlayerOneID == playerID {
		return true
	}
	return t.PlayerTwoID != nil && *t.PlayerTwoID == playerID
}

// PlayerIDs returns the ids of the occupied slots.
func (t *TeamInGame) PlayerIDs() []string {
	ids := make([]string, 0, 2)
	if t.PlayerOneID != "" {
		ids = append(ids, t.PlayerOneID)
	}
	if t.PlayerTwoID != nil && *t.PlayerTwoID != "" {
		ids = append(ids, *t.PlayerTwoID)
	}
	return ids
}
