package service

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
	"github.com/shopspring/decimal"
)

type Stats struct {
	Wins int `json:"wins"`
	Loss int `json:"loss"`
	Draw int `json:"draw"`
}

type PlayerStats struct {
	NickName   string          `json:"nickName"`
	PlayerID   string          `json:"playerId"`
	TotalGames int             `json:"totalGames"`
	Stats      Stats           `json:"stats"`
	WinRate    decimal.Decimal `json:"winRate"` // percent of games won, 2 places
}

// StatsService derives results from the recorded games rather than from the
// cumulative counters on the player row.
type StatsService struct {
	store store.Store
}

func NewStatsService(s store.Store) *StatsService {
	return &StatsService{store: s}
}

// StatsFor tallies the player's own side in every game it played. Bad data
// with the player on both sides of a game counts both rows.
func (s *StatsService) StatsFor(ctx context.Context, nickName string) (*PlayerStats, error) {
	p, err := requirePlayer(ctx, s.store, nickName)
	if err != nil {
		return nil, err
	}

	teams, err := s.store.ListTeamsByPlayer(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	res := &PlayerStats{NickName: p.NickName, PlayerID: p.ID, WinRate: decimal.Zero}
	games := make(map[string]struct{})
	for _, t := range teams {
		games[t.GameID] = struct{}{}
		switch t.ResultTag {
		case models.ResultWinner:
			res.Stats.Wins++
		case models.ResultLoss:
			res.Stats.Loss++
		case models.ResultDraw:
			res.Stats.Draw++
		}
	}
	res.TotalGames = len(games)

	if res.TotalGames > 0 {
		res.WinRate = decimal.NewFromInt(int64(res.Stats.Wins)).
			Div(decimal.NewFromInt(int64(res.TotalGames))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return res, nil
}

// TotalWins counts the games in which the player's side won.
func (s *StatsService) TotalWins(ctx context.Context, nickName string) (int, error) {
	p, err := requirePlayer(ctx, s.store, nickName)
	if err != nil {
		return 0, err
	}

	teams, err := s.store.ListTeamsByPlayer(ctx, p.ID)
	if err != nil {
		return 0, err
	}

	won := make(map[string]struct{})
	for _, t := range teams {
		if t.ResultTag == models.ResultWinner {
			won[t.GameID] = struct{}{}
		}
	}
	return len(won), nil
}
