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

// TeamChoiceService is the catalog of picked in-simulation squads.
type TeamChoiceService struct {
	store     store.Store
	publisher Publisher
}

func NewTeamChoiceService(s store.Store, p Publisher) *TeamChoiceService {
	if p == nil {
		p = nopPublisher{}
	}
	return &TeamChoiceService{store: s, publisher: p}
}

// RecordSelection counts one pick of name, creating the entry on first use.
func (s *TeamChoiceService) RecordSelection(ctx context.Context, name string, starsIfNew int) (*models.TeamChoice, error) {
	return recordSelection(ctx, s.store, name, starsIfNew)
}

func recordSelection(ctx context.Context, q store.Querier, name string, starsIfNew int) (*models.TeamChoice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newError(KindMissingTeamChoiceName, "team choice name is required")
	}
	if starsIfNew < 0 || starsIfNew > models.MaxStars {
		return nil, newError(KindInvalidInput, "stars must be between 0 and %d", models.MaxStars)
	}
	return q.UpsertTeamChoice(ctx, name, starsIfNew)
}

// Register adds a catalog entry explicitly. Unlike RecordSelection it refuses
// names that already exist.
func (s *TeamChoiceService) Register(ctx context.Context, name string, stars int) (*models.TeamChoice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newError(KindMissingTeamChoiceName, "team choice name is required")
	}
	if stars < 1 || stars > models.MaxStars {
		return nil, newError(KindInvalidInput, "stars must be between 1 and %d", models.MaxStars)
	}

	tc := &models.TeamChoice{ID: uuid.NewString(), Nome: name, Stars: stars, NChoices: 1}
	if err := s.store.CreateTeamChoice(ctx, tc); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, newError(KindDuplicateTeamName, "team %s already exists", name)
		}
		return nil, fmt.Errorf("failed to create team choice: %w", err)
	}

	publish(s.publisher, comm.TeamChoiceRegistered, tc)
	return tc, nil
}

func (s *TeamChoiceService) GetSelectionCount(ctx context.Context, name string) (int, error) {
	tc, err := s.store.GetTeamChoiceByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return 0, err
	}
	if tc == nil {
		return 0, newError(KindNotFound, "team %s was never picked", name)
	}
	return tc.NChoices, nil
}

func (s *TeamChoiceService) List(ctx context.Context) ([]*models.TeamChoice, error) {
	return s.store.ListTeamChoices(ctx)
}
