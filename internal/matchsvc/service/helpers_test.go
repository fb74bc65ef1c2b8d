package service

import (
	"context"
	"sync"
	"testing"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/store"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []comm.Event
}

func (p *recordingPublisher) Publish(ev comm.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	store   *store.MemoryStore
	pub     *recordingPublisher
	players *PlayerService
	choices *TeamChoiceService
	games   *GameService
	stats   *StatsService
	queries *GameQueryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemoryStore()
	pub := &recordingPublisher{}
	return &fixture{
		store:   st,
		pub:     pub,
		players: NewPlayerService(st, pub),
		choices: NewTeamChoiceService(st, pub),
		games:   NewGameService(st, pub),
		stats:   NewStatsService(st),
		queries: NewGameQueryService(st),
	}
}

func (f *fixture) register(t *testing.T, nicks ...string) map[string]*models.Player {
	t.Helper()
	out := make(map[string]*models.Player)
	for _, n := range nicks {
		p, err := f.players.Register(context.Background(), n)
		require.NoError(t, err)
		out[n] = p
	}
	return out
}

func (f *fixture) player(t *testing.T, nick string) *models.Player {
	t.Helper()
	p, err := f.store.GetPlayerByNickName(context.Background(), nick)
	require.NoError(t, err)
	require.NotNil(t, p, "player %s", nick)
	return p
}

func entry(side models.Side, score int, tag models.ResultTag, team, one string) TeamEntry {
	return TeamEntry{Side: side, Score: score, ResultTag: tag, TeamSelect: team, PlayerOneNickname: one}
}

// game records a PROFIT vs VECTOR match between two solo players.
func (f *fixture) game(t *testing.T, profit string, profitTag models.ResultTag, vector string, vectorTag models.ResultTag) *models.Game {
	t.Helper()
	g, err := f.games.RecordGame(context.Background(), "2024-01-01", []TeamEntry{
		entry(models.SideProfit, 2, profitTag, "X", profit),
		entry(models.SideVector, 1, vectorTag, "Y", vector),
	})
	require.NoError(t, err)
	return g
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
