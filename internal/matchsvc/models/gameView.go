package models

// GameView is the display shape of a game, grouped by side.
// Profit or Vector is nil only when the stored rows are inconsistent.
type GameView struct {
	ID        string      `json:"id"`
	DataMatch string      `json:"dataMatch"`
	Profit    *TeamInGame `json:"profit"`
	Vector    *TeamInGame `json:"vector"`
}

func NewGameView(g *Game) GameView {
	return GameView{
		ID:        g.ID,
		DataMatch: g.DataMatch,
		Profit:    g.Team(SideProfit),
		Vector:    g.Team(SideVector),
	}
}
