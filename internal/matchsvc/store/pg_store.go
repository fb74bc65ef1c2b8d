package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries groups the per-table stores over one DBTX.
type Queries struct {
	*PlayerStore
	*TeamChoiceStore
	*GameStore
}

func NewQueries(db DBTX) *Queries {
	return &Queries{
		PlayerStore:     NewPlayerStore(db),
		TeamChoiceStore: NewTeamChoiceStore(db),
		GameStore:       NewGameStore(db),
	}
}

// PgStore is the Postgres backed Store.
type PgStore struct {
	*Queries
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{Queries: NewQueries(pool), pool: pool}
}

func (s *PgStore) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewQueries(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PgStore) Close() {
	s.pool.Close()
}

var _ Store = (*PgStore)(nil)
