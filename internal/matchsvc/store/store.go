package store

import (
	"context"
	"errors"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by updates that matched no row.
	// Point lookups return nil, nil instead.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate key")
)

// Querier is every query the services issue against the relational store.
type Querier interface {
	CreatePlayer(ctx context.Context, p *models.Player) error
	GetPlayerByID(ctx context.Context, id string) (*models.Player, error)
	GetPlayerByNickName(ctx context.Context, nickName string) (*models.Player, error)
	NickNameTaken(ctx context.Context, nickName, excludeID string) (bool, error)
	UpdatePlayerNickName(ctx context.Context, id, nickName string) error
	ApplyPlayerResult(ctx context.Context, id string, goals int, tag models.ResultTag) error
	DeletePlayer(ctx context.Context, id string) error
	ListPlayers(ctx context.Context) ([]*models.Player, error)

	CreateTeamChoice(ctx context.Context, tc *models.TeamChoice) error
	UpsertTeamChoice(ctx context.Context, name string, starsIfNew int) (*models.TeamChoice, error)
	GetTeamChoiceByName(ctx context.Context, name string) (*models.TeamChoice, error)
	ListTeamChoices(ctx context.Context) ([]*models.TeamChoice, error)

	CreateGame(ctx context.Context, g *models.Game) error
	GetGameByID(ctx context.Context, id string) (*models.Game, error)
	UpdateGameDataMatch(ctx context.Context, id, dataMatch string) error
	DeleteGame(ctx context.Context, id string) error
	ListGames(ctx context.Context) ([]*models.Game, error)
	ListGamesByPlayer(ctx context.Context, playerID string) ([]*models.Game, error)
	GetTeamInGame(ctx context.Context, gameID string, side models.Side) (*models.TeamInGame, error)
	UpdateTeamInGame(ctx context.Context, t *models.TeamInGame) error
	ListTeamsByPlayer(ctx context.Context, playerID string) ([]*models.TeamInGame, error)
}

// Store is a Querier that can also run a function inside one transaction.
// If fn returns an error none of its writes are visible afterwards.
type Store interface {
	Querier
	WithTx(ctx context.Context, fn func(q Querier) error) error
	Close()
}

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
