package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TeamChoiceStore struct {
	db DBTX
}

func NewTeamChoiceStore(db DBTX) *TeamChoiceStore {
	return &TeamChoiceStore{db: db}
}

const teamChoiceColumns = `id, nome, stars, n_choices, created_at, updated_at`

func scanTeamChoice(row pgx.Row) (*models.TeamChoice, error) {
	tc := &models.TeamChoice{}
	err := row.Scan(&tc.ID, &tc.Nome, &tc.Stars, &tc.NChoices, &tc.CreatedAt, &tc.UpdatedAt)
	return tc, err
}

func (s *TeamChoiceStore) CreateTeamChoice(ctx context.Context, tc *models.TeamChoice) error {
	query := `
		INSERT INTO team_choices (id, nome, stars, n_choices)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRow(ctx, query, tc.ID, tc.Nome, tc.Stars, tc.NChoices).Scan(&tc.CreatedAt, &tc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("team choice %q: %w", tc.Nome, ErrDuplicate)
		}
		return fmt.Errorf("could not create team choice: %w", err)
	}
	return nil
}

// UpsertTeamChoice inserts name with one selection, or bumps n_choices of the
// existing row. The increment happens in the database so concurrent
// selections never lose a count. Stars of an existing row are kept.
func (s *TeamChoiceStore) UpsertTeamChoice(ctx context.Context, name string, starsIfNew int) (*models.TeamChoice, error) {
	query := `
		INSERT INTO team_choices (id, nome, stars, n_choices)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (nome) DO UPDATE SET
			n_choices = team_choices.n_choices + 1,
			updated_at = now()
		RETURNING ` + teamChoiceColumns

	tc, err := scanTeamChoice(s.db.QueryRow(ctx, query, uuid.NewString(), name, starsIfNew))
	if err != nil {
		return nil, fmt.Errorf("failed to record team choice: %w", err)
	}
	return tc, nil
}

func (s *TeamChoiceStore) GetTeamChoiceByName(ctx context.Context, name string) (*models.TeamChoice, error) {
	tc, err := scanTeamChoice(s.db.QueryRow(ctx, `SELECT `+teamChoiceColumns+` FROM team_choices WHERE nome = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team choice: %w", err)
	}
	return tc, nil
}

func (s *TeamChoiceStore) ListTeamChoices(ctx context.Context) ([]*models.TeamChoice, error) {
	rows, err := s.db.Query(ctx, `SELECT `+teamChoiceColumns+` FROM team_choices ORDER BY n_choices DESC, nome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices []*models.TeamChoice
	for rows.Next() {
		tc, err := scanTeamChoice(rows)
		if err != nil {
			return nil, err
		}
		choices = append(choices, tc)
	}
	return choices, rows.Err()
}
