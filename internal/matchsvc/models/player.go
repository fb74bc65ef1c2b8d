package models

import "time"

// Player is a registered nickname together with its cumulative counters.
type Player struct {
	ID            string    `json:"id"`            // uuid
	NickName      string    `json:"nickName"`      // unique
	NumScoreGoals int       `json:"numScoreGoals"` // sum of team scores over every game played
	NumWins       int       `json:"numWins"`
	NumLoss       int       `json:"numLoss"`
	NumDraw       int       `json:"numDraw"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
