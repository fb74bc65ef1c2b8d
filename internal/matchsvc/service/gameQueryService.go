package service

import (
	"context"
	"strings"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
)

// AllPlayers makes ListForNickname skip player resolution.
const AllPlayers = "all"

type GameQueryService struct {
	store store.Store
}

func NewGameQueryService(s store.Store) *GameQueryService {
	return &GameQueryService{store: s}
}

func (s *GameQueryService) ListAll(ctx context.Context) ([]models.GameView, error) {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(games), nil
}

// ListForNickname returns the games nickName played, or every game for "all".
func (s *GameQueryService) ListForNickname(ctx context.Context, nickName string) ([]models.GameView, error) {
	nickName = strings.TrimSpace(nickName)
	if nickName == "" {
		return nil, newError(KindInvalidInput, "nickname is required")
	}
	if strings.EqualFold(nickName, AllPlayers) {
		return s.ListAll(ctx)
	}

	p, err := requirePlayer(ctx, s.store, nickName)
	if err != nil {
		return nil, err
	}
	games, err := s.store.ListGamesByPlayer(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toViews(games), nil
}

func (s *GameQueryService) Get(ctx context.Context, gameID string) (*models.GameView, error) {
	g, err := s.store.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, newError(KindNotFound, "game %s not found", gameID)
	}
	v := models.NewGameView(g)
	return &v, nil
}

func toViews(games []*models.Game) []models.GameView {
	views := make([]models.GameView, 0, len(games))
	for _, g := range games {
		views = append(views, models.NewGameView(g))
	}
	return views
}
