package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5"
)

const teamColumns = `id, game_id, side, team_select, score, result_tag, player_one_id, player_two_id, team_choice_id`

func scanTeam(row pgx.Row) (*models.TeamInGame, error) {
	t := &models.TeamInGame{}
	var side, tag string
	var playerOne *string
	err := row.Scan(
		&t.ID,
		&t.GameID,
		&side,
		&t.TeamSelect,
		&t.Score,
		&tag,
		&playerOne,
		&t.PlayerTwoID,
		&t.TeamChoiceID,
	)
	if err != nil {
		return nil, err
	}
	t.Side = models.Side(side)
	t.ResultTag = models.ResultTag(tag)
	// player_one_id is nulled when the player is removed
	if playerOne != nil {
		t.PlayerOneID = *playerOne
	}
	return t, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *GameStore) insertTeam(ctx context.Context, t *models.TeamInGame) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO teams_in_game (`+teamColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, t.ID, t.GameID, string(t.Side), t.TeamSelect, t.Score, string(t.ResultTag),
		t.PlayerOneID, t.PlayerTwoID, t.TeamChoiceID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("side %s of game %s: %w", t.Side, t.GameID, ErrDuplicate)
		}
		return fmt.Errorf("could not create team in game: %w", err)
	}
	return nil
}

func (s *GameStore) GetTeamInGame(ctx context.Context, gameID string, side models.Side) (*models.TeamInGame, error) {
	t, err := scanTeam(s.db.QueryRow(ctx, `
		SELECT `+teamColumns+`
		FROM teams_in_game
		WHERE game_id = $1 AND side = $2
	`, gameID, string(side)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team in game: %w", err)
	}
	return t, nil
}

// UpdateTeamInGame overwrites the mutable columns of the (game_id, side) row.
func (s *GameStore) UpdateTeamInGame(ctx context.Context, t *models.TeamInGame) error {
	ct, err := s.db.Exec(ctx, `
		UPDATE teams_in_game
		SET team_select = $3, score = $4, player_one_id = $5, player_two_id = $6
		WHERE game_id = $1 AND side = $2
	`, t.GameID, string(t.Side), t.TeamSelect, t.Score, nullable(t.PlayerOneID), t.PlayerTwoID)
	if err != nil {
		return fmt.Errorf("failed to update team in game: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("side %s of game %s: %w", t.Side, t.GameID, ErrNotFound)
	}
	return nil
}

// ListTeamsByPlayer returns only the team rows in which playerID holds a slot.
func (s *GameStore) ListTeamsByPlayer(ctx context.Context, playerID string) ([]*models.TeamInGame, error) {
	return s.listTeams(ctx, `WHERE player_one_id = $1 OR player_two_id = $1`, playerID)
}

func (s *GameStore) listTeams(ctx context.Context, where string, args ...any) ([]*models.TeamInGame, error) {
	rows, err := s.db.Query(ctx, `SELECT `+teamColumns+` FROM teams_in_game `+where+` ORDER BY game_id, side`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams in game: %w", err)
	}
	defer rows.Close()

	var teams []*models.TeamInGame
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}
