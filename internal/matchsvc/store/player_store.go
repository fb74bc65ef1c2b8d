package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5"
)

type PlayerStore struct {
	db DBTX
}

func NewPlayerStore(db DBTX) *PlayerStore {
	return &PlayerStore{db: db}
}

const playerColumns = `id, nick_name, num_score_goals, num_wins, num_loss, num_draw, created_at, updated_at`

func scanPlayer(row pgx.Row) (*models.Player, error) {
	p := &models.Player{}
	err := row.Scan(
		&p.ID,
		&p.NickName,
		&p.NumScoreGoals,
		&p.NumWins,
		&p.NumLoss,
		&p.NumDraw,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (id, nick_name)
		VALUES ($1, $2)
		RETURNING num_score_goals, num_wins, num_loss, num_draw, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query, p.ID, p.NickName).Scan(
		&p.NumScoreGoals,
		&p.NumWins,
		&p.NumLoss,
		&p.NumDraw,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("nickname %q: %w", p.NickName, ErrDuplicate)
		}
		return fmt.Errorf("could not create player: %w", err)
	}
	return nil
}

func (s *PlayerStore) GetPlayerByID(ctx context.Context, id string) (*models.Player, error) {
	p, err := scanPlayer(s.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}
	return p, nil
}

func (s *PlayerStore) GetPlayerByNickName(ctx context.Context, nickName string) (*models.Player, error) {
	p, err := scanPlayer(s.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE nick_name = $1`, nickName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player by nickname: %w", err)
	}
	return p, nil
}

// NickNameTaken reports whether a player other than excludeID holds nickName.
func (s *PlayerStore) NickNameTaken(ctx context.Context, nickName, excludeID string) (bool, error) {
	var taken bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM players WHERE nick_name = $1 AND id <> $2)
	`, nickName, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("failed to check nickname: %w", err)
	}
	return taken, nil
}

func (s *PlayerStore) UpdatePlayerNickName(ctx context.Context, id, nickName string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE players SET nick_name = $2, updated_at = now() WHERE id = $1
	`, id, nickName)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("nickname %q: %w", nickName, ErrDuplicate)
		}
		return fmt.Errorf("failed to rename player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return nil
}

// ApplyPlayerResult adds goals and bumps the counter matching tag in one statement.
func (s *PlayerStore) ApplyPlayerResult(ctx context.Context, id string, goals int, tag models.ResultTag) error {
	query := `
		UPDATE players
		SET num_score_goals = num_score_goals + $2,
		    num_wins = num_wins + CASE WHEN $3::text = 'WINNER' THEN 1 ELSE 0 END,
		    num_loss = num_loss + CASE WHEN $3::text = 'LOSS' THEN 1 ELSE 0 END,
		    num_draw = num_draw + CASE WHEN $3::text = 'DRAW' THEN 1 ELSE 0 END,
		    updated_at = now()
		WHERE id = $1
	`
	ct, err := s.db.Exec(ctx, query, id, goals, string(tag))
	if err != nil {
		return fmt.Errorf("failed to update player counters: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *PlayerStore) DeletePlayer(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *PlayerStore) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	rows, err := s.db.Query(ctx, `SELECT `+playerColumns+` FROM players ORDER BY nick_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
