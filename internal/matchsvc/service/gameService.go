package service

import (
	"context"
	"strings"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
	"github.com/google/uuid"
)

// TeamEntry is one side of a game as submitted by the client.
type TeamEntry struct {
	Side       models.Side      `json:"side"`
	Score      int              `json:"score"`
	ResultTag  models.ResultTag `json:"resultTag"`
	TeamSelect string           `json:"teamSelect"`
	// TeamChoiceName defaults to TeamSelect.
	TeamChoiceName    string `json:"teamChoiceName,omitempty"`
	Stars             int    `json:"stars,omitempty"` // rating used if the team choice is new
	PlayerOneNickname string `json:"playerOneNickname"`
	PlayerTwoNickname string `json:"playerTwoNickname,omitempty"`
}

// TeamPatch is a sparse update of one side. Nil or blank strings leave the
// stored value unchanged; a non-nil Score is always applied, 0 included.
type TeamPatch struct {
	TeamSelect    *string `json:"teamSelect,omitempty"`
	Score         *int    `json:"score,omitempty"`
	PlayerNickOne *string `json:"playerNickOne,omitempty"`
	PlayerNickTwo *string `json:"playerNickTwo,omitempty"`
	DataMatch     *string `json:"dataMatch,omitempty"`
}

// GameService records, edits and deletes games.
type GameService struct {
	store     store.Store
	publisher Publisher
}

func NewGameService(s store.Store, p Publisher) *GameService {
	if p == nil {
		p = nopPublisher{}
	}
	return &GameService{store: s, publisher: p}
}

// RecordGame validates both entries, bumps the team choices and player
// counters and stores the game, all in one transaction.
func (s *GameService) RecordGame(ctx context.Context, dataMatch string, teams []TeamEntry) (*models.Game, error) {
	if err := validateEntries(teams); err != nil {
		return nil, err
	}

	game := &models.Game{ID: uuid.NewString(), DataMatch: strings.TrimSpace(dataMatch)}
	err := s.store.WithTx(ctx, func(q store.Querier) error {
		seen := make(map[string]models.Side)
		for _, e := range teams {
			team, err := resolveEntry(ctx, q, e)
			if err != nil {
				return err
			}

			for _, id := range team.PlayerIDs() {
				if other, ok := seen[id]; ok && other != team.Side {
					return newError(KindInvalidInput, "a player cannot play on both sides of a game")
				}
				seen[id] = team.Side
				if err := q.ApplyPlayerResult(ctx, id, team.Score, team.ResultTag); err != nil {
					return err
				}
			}
			game.Teams = append(game.Teams, team)
		}
		return q.CreateGame(ctx, game)
	})
	if err != nil {
		return nil, err
	}

	publish(s.publisher, comm.GameRecorded, models.NewGameView(game))
	return game, nil
}

func validateEntries(teams []TeamEntry) error {
	if len(teams) != 2 {
		return newError(KindInvalidTeamCount, "a game must have exactly 2 teams, got %d", len(teams))
	}
	if !teams[0].Side.Valid() || !teams[1].Side.Valid() || teams[0].Side == teams[1].Side {
		return newError(KindInvalidInput, "teams must be one %s and one %s", models.SideProfit, models.SideVector)
	}
	for _, e := range teams {
		if !e.ResultTag.Valid() {
			return newError(KindInvalidInput, "invalid result tag %q for side %s", e.ResultTag, e.Side)
		}
		if e.Score < 0 {
			return newError(KindInvalidInput, "score of side %s cannot be negative", e.Side)
		}
	}
	return nil
}

// resolveEntry turns nicknames into ids and records the team choice.
func resolveEntry(ctx context.Context, q store.Querier, e TeamEntry) (*models.TeamInGame, error) {
	one, err := resolvePlayer(ctx, q, e.PlayerOneNickname)
	if err != nil {
		return nil, err
	}
	if one.Kind != RefFound {
		return nil, newError(KindPlayerNotFound, "player one %q not recognized for team %s", e.PlayerOneNickname, e.Side)
	}

	two, err := resolvePlayer(ctx, q, e.PlayerTwoNickname)
	if err != nil {
		return nil, err
	}
	if two.Kind == RefNotFound {
		return nil, newError(KindPlayerNotFound, "player two %q not recognized for team %s", e.PlayerTwoNickname, e.Side)
	}
	if two.Kind == RefFound && two.ID == one.ID {
		return nil, newError(KindDuplicatePlayerInTeam, "player one and player two are the same player on team %s", e.Side)
	}

	teamSelect := strings.TrimSpace(e.TeamSelect)
	choiceName := strings.TrimSpace(e.TeamChoiceName)
	if choiceName == "" {
		choiceName = teamSelect
	}
	if choiceName == "" {
		return nil, newError(KindMissingTeamChoiceName, "team choice name is required for side %s", e.Side)
	}
	if teamSelect == "" {
		teamSelect = choiceName
	}

	tc, err := recordSelection(ctx, q, choiceName, e.Stars)
	if err != nil {
		return nil, err
	}

	team := &models.TeamInGame{
		ID:           uuid.NewString(),
		Side:         e.Side,
		TeamSelect:   teamSelect,
		Score:        e.Score,
		ResultTag:    e.ResultTag,
		PlayerOneID:  one.ID,
		TeamChoiceID: &tc.ID,
	}
	if two.Kind == RefFound {
		id := two.ID
		team.PlayerTwoID = &id
	}
	return team, nil
}

// DeleteGame removes the game and its two team rows. Players are untouched.
func (s *GameService) DeleteGame(ctx context.Context, gameID string) error {
	err := s.store.WithTx(ctx, func(q store.Querier) error {
		g, err := q.GetGameByID(ctx, gameID)
		if err != nil {
			return err
		}
		if g == nil {
			return newError(KindNotFound, "game %s not found", gameID)
		}
		return q.DeleteGame(ctx, gameID)
	})
	if err != nil {
		return err
	}

	publish(s.publisher, comm.GameDeleted, comm.GameRef{ID: gameID})
	return nil
}

// UpdateTeamInGame applies patch to one side of a game. The game's dataMatch
// and the team row are written in the same transaction.
// Player counters are not recomputed.
func (s *GameService) UpdateTeamInGame(ctx context.Context, gameID string, side models.Side, patch TeamPatch) (*models.TeamInGame, error) {
	if !side.Valid() {
		return nil, newError(KindInvalidInput, "invalid side %q", side)
	}
	if patch.Score != nil && *patch.Score < 0 {
		return nil, newError(KindInvalidInput, "score cannot be negative")
	}

	var updated *models.TeamInGame
	err := s.store.WithTx(ctx, func(q store.Querier) error {
		t, err := q.GetTeamInGame(ctx, gameID, side)
		if err != nil {
			return err
		}
		if t == nil {
			return newError(KindNotFound, "side %s of game %s not found", side, gameID)
		}

		if v := supplied(patch.TeamSelect); v != "" {
			t.TeamSelect = v
		}
		if patch.Score != nil {
			t.Score = *patch.Score
		}
		playersChanged := supplied(patch.PlayerNickOne) != "" || supplied(patch.PlayerNickTwo) != ""
		if v := supplied(patch.PlayerNickOne); v != "" {
			p, err := requirePlayer(ctx, q, v)
			if err != nil {
				return err
			}
			t.PlayerOneID = p.ID
		}
		if v := supplied(patch.PlayerNickTwo); v != "" {
			p, err := requirePlayer(ctx, q, v)
			if err != nil {
				return err
			}
			id := p.ID
			t.PlayerTwoID = &id
		}
		if t.PlayerTwoID != nil && *t.PlayerTwoID == t.PlayerOneID {
			return newError(KindDuplicatePlayerInTeam, "player one and player two are the same player on team %s", side)
		}
		if playersChanged {
			other, err := q.GetTeamInGame(ctx, gameID, side.Opposite())
			if err != nil {
				return err
			}
			if other != nil {
				for _, id := range t.PlayerIDs() {
					if other.HasPlayer(id) {
						return newError(KindInvalidInput, "a player cannot play on both sides of a game")
					}
				}
			}
		}

		if v := supplied(patch.DataMatch); v != "" {
			if err := q.UpdateGameDataMatch(ctx, gameID, v); err != nil {
				return err
			}
		}
		if err := q.UpdateTeamInGame(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(s.publisher, comm.GameUpdated, updated)
	return updated, nil
}

func supplied(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
