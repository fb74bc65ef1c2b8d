package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5"
)

type GameStore struct {
	db DBTX
}

func NewGameStore(db DBTX) *GameStore {
	return &GameStore{db: db}
}

// CreateGame inserts the game row and its team rows. It issues several
// statements, so callers run it inside WithTx.
func (s *GameStore) CreateGame(ctx context.Context, g *models.Game) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO games (id, data_match)
		VALUES ($1, $2)
		RETURNING created_at, updated_at
	`, g.ID, g.DataMatch).Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	for _, t := range g.Teams {
		t.GameID = g.ID
		if err := s.insertTeam(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *GameStore) GetGameByID(ctx context.Context, id string) (*models.Game, error) {
	g := &models.Game{}
	err := s.db.QueryRow(ctx, `
		SELECT id, data_match, created_at, updated_at
		FROM games
		WHERE id = $1
	`, id).Scan(&g.ID, &g.DataMatch, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	teams, err := s.listTeams(ctx, `WHERE game_id = $1`, id)
	if err != nil {
		return nil, err
	}
	g.Teams = teams
	return g, nil
}

func (s *GameStore) UpdateGameDataMatch(ctx context.Context, id, dataMatch string) error {
	ct, err := s.db.Exec(ctx, `UPDATE games SET data_match = $2, updated_at = now() WHERE id = $1`, id, dataMatch)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteGame removes the game; its team rows go with it (ON DELETE CASCADE).
func (s *GameStore) DeleteGame(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *GameStore) ListGames(ctx context.Context) ([]*models.Game, error) {
	return s.listGames(ctx, ``)
}

// ListGamesByPlayer returns the games in which playerID holds any slot on
// either side, each with both of its teams.
func (s *GameStore) ListGamesByPlayer(ctx context.Context, playerID string) ([]*models.Game, error) {
	return s.listGames(ctx, `
		WHERE EXISTS (
			SELECT 1 FROM teams_in_game t
			WHERE t.game_id = g.id AND (t.player_one_id = $1 OR t.player_two_id = $1)
		)`, playerID)
}

func (s *GameStore) listGames(ctx context.Context, where string, args ...any) ([]*models.Game, error) {
	rows, err := s.db.Query(ctx, `
		SELECT g.id, g.data_match, g.created_at, g.updated_at
		FROM games g `+where+`
		ORDER BY g.created_at, g.id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*models.Game
	byID := make(map[string]*models.Game)
	ids := make([]string, 0)
	for rows.Next() {
		g := &models.Game{}
		if err := rows.Scan(&g.ID, &g.DataMatch, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		games = append(games, g)
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return games, nil
	}

	teams, err := s.listTeams(ctx, `WHERE game_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		if g, ok := byID[t.GameID]; ok {
			g.Teams = append(g.Teams, t)
		}
	}
	return games, nil
}
