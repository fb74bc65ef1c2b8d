package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
	"github.com/google/uuid"
)

// RefKind tells the three outcomes of resolving an optional nickname apart.
type RefKind int

const (
	RefAbsent   RefKind = iota // no nickname given, the slot is intentionally empty
	RefNotFound                // nickname given but no player holds it
	RefFound
)

type PlayerRef struct {
	Kind     RefKind
	NickName string
	ID       string // set only when Kind is RefFound
}

// PlayerService is the player directory.
type PlayerService struct {
	store     store.Store
	publisher Publisher
}

func NewPlayerService(s store.Store, p Publisher) *PlayerService {
	if p == nil {
		p = nopPublisher{}
	}
	return &PlayerService{store: s, publisher: p}
}

// Register creates a player with zeroed counters.
func (s *PlayerService) Register(ctx context.Context, nickName string) (*models.Player, error) {
	nickName = strings.TrimSpace(nickName)
	if nickName == "" {
		return nil, newError(KindInvalidInput, "nickname is required")
	}

	taken, err := s.store.NickNameTaken(ctx, nickName, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(KindDuplicateNickname, "nickname %s already exists", nickName)
	}

	p := &models.Player{ID: uuid.NewString(), NickName: nickName}
	if err := s.store.CreatePlayer(ctx, p); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, store.ErrDuplicate) {
			return nil, newError(KindDuplicateNickname, "nickname %s already exists", nickName)
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	publish(s.publisher, comm.PlayerRegistered, comm.PlayerData{ID: p.ID, NickName: p.NickName})
	return p, nil
}

// Rename gives playerID a new nickname. The player may keep its own nickname.
func (s *PlayerService) Rename(ctx context.Context, playerID, newNickName string) error {
	newNickName = strings.TrimSpace(newNickName)
	if newNickName == "" {
		return newError(KindInvalidInput, "invalid nickname")
	}

	err := s.store.WithTx(ctx, func(q store.Querier) error {
		p, err := q.GetPlayerByID(ctx, playerID)
		if err != nil {
			return err
		}
		if p == nil {
			return newError(KindNotFound, "player %s not found", playerID)
		}

		taken, err := q.NickNameTaken(ctx, newNickName, playerID)
		if err != nil {
			return err
		}
		if taken {
			return newError(KindDuplicateNickname, "a player with nickname %s already exists", newNickName)
		}

		if err := q.UpdatePlayerNickName(ctx, playerID, newNickName); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return newError(KindDuplicateNickname, "a player with nickname %s already exists", newNickName)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	publish(s.publisher, comm.PlayerRenamed, comm.PlayerData{ID: playerID, NickName: newNickName})
	return nil
}

// Remove deletes the player. Games it played keep their rows with the slot emptied.
func (s *PlayerService) Remove(ctx context.Context, playerID string) error {
	err := s.store.WithTx(ctx, func(q store.Querier) error {
		p, err := q.GetPlayerByID(ctx, playerID)
		if err != nil {
			return err
		}
		if p == nil {
			return newError(KindNotFound, "player %s not found", playerID)
		}
		return q.DeletePlayer(ctx, playerID)
	})
	if err != nil {
		return err
	}

	publish(s.publisher, comm.PlayerRemoved, comm.PlayerData{ID: playerID})
	return nil
}

func (s *PlayerService) ResolveID(ctx context.Context, nickName string) (PlayerRef, error) {
	return resolvePlayer(ctx, s.store, nickName)
}

// resolvePlayer runs against q so callers inside a transaction see their own writes.
func resolvePlayer(ctx context.Context, q store.Querier, nickName string) (PlayerRef, error) {
	nickName = strings.TrimSpace(nickName)
	if nickName == "" {
		return PlayerRef{Kind: RefAbsent}, nil
	}

	p, err := q.GetPlayerByNickName(ctx, nickName)
	if err != nil {
		return PlayerRef{}, err
	}
	if p == nil {
		return PlayerRef{Kind: RefNotFound, NickName: nickName}, nil
	}
	return PlayerRef{Kind: RefFound, NickName: nickName, ID: p.ID}, nil
}

// GetByNickName returns the player or a PlayerNotFound error.
func (s *PlayerService) GetByNickName(ctx context.Context, nickName string) (*models.Player, error) {
	return requirePlayer(ctx, s.store, nickName)
}

func requirePlayer(ctx context.Context, q store.Querier, nickName string) (*models.Player, error) {
	nickName = strings.TrimSpace(nickName)
	if nickName == "" {
		return nil, newError(KindPlayerNotFound, "nickname is required")
	}
	p, err := q.GetPlayerByNickName(ctx, nickName)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, newError(KindPlayerNotFound, "player %s not found", nickName)
	}
	return p, nil
}

func (s *PlayerService) List(ctx context.Context) ([]*models.Player, error) {
	return s.store.ListPlayers(ctx)
}
