package models

import "time"

type Side string

const (
	SideProfit Side = "PROFIT"
	SideVector Side = "VECTOR"
)

func (s Side) Valid() bool {
	return s == SideProfit || s == SideVector
}

// Opposite returns the other side of the game.
func (s Side) Opposite() Side {
	if s == SideProfit {
		return SideVector
	}
	return SideProfit
}

type ResultTag string

const (
	ResultWinner ResultTag = "WINNER"
	ResultLoss   ResultTag = "LOSS"
	ResultDraw   ResultTag = "DRAW"
)

func (t ResultTag) Valid() bool {
	switch t {
	case ResultWinner, ResultLoss, ResultDraw:
		return true
	}
	return false
}

// Game is one recorded match. A stored game always carries two teams, one per side.
type Game struct {
	ID        string        `json:"id"`
	DataMatch string        `json:"dataMatch"` // free text date or label
	Teams     []*TeamInGame `json:"teams"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Team returns the team playing on side, or nil.
func (g *Game) Team(side Side) *TeamInGame {
	for _, t := range g.Teams {
		if t.Side == side {
			return t
		}
	}
	return nil
}

// HasPlayer reports whether playerID occupies any slot of either team.
func (g *Game) HasPlayer(playerID string) bool {
	for _, t := range g.Teams {
		if t.HasPlayer(playerID) {
			return true
		}
	}
	return false
}
