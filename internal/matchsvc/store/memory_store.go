package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/google/uuid"
)

// MemoryStore keeps everything in process. Transactions are serialized and
// run against a copy of the state that replaces the live state on success.
// It enforces the same keys and cascades as schema.sql.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemState(), now: time.Now}
}

type memState struct {
	players     map[string]*models.Player
	teamChoices map[string]*models.TeamChoice
	games       map[string]*models.Game
	gameOrder   []string
	teams       map[string]*models.TeamInGame // by team row id
	now         func() time.Time
}

func newMemState() *memState {
	return &memState{
		players:     make(map[string]*models.Player),
		teamChoices: make(map[string]*models.TeamChoice),
		games:       make(map[string]*models.Game),
		teams:       make(map[string]*models.TeamInGame),
	}
}

func (m *memState) clone() *memState {
	c := newMemState()
	for k, p := range m.players {
		cp := *p
		c.players[k] = &cp
	}
	for k, tc := range m.teamChoices {
		cp := *tc
		c.teamChoices[k] = &cp
	}
	for k, g := range m.games {
		cp := *g
		cp.Teams = nil
		c.games[k] = &cp
	}
	for k, t := range m.teams {
		c.teams[k] = copyTeam(t)
	}
	c.gameOrder = append([]string(nil), m.gameOrder...)
	c.now = m.now
	return c
}

func copyTeam(t *models.TeamInGame) *models.TeamInGame {
	cp := *t
	if t.PlayerTwoID != nil {
		v := *t.PlayerTwoID
		cp.PlayerTwoID = &v
	}
	if t.TeamChoiceID != nil {
		v := *t.TeamChoiceID
		cp.TeamChoiceID = &v
	}
	return &cp
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(q Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	work.now = s.now
	if err := fn(work); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	s.state = work
	return nil
}

func (s *MemoryStore) Close() {}

// run executes fn against the live state under the lock.
func (s *MemoryStore) run(fn func(st *memState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.now = s.now
	return fn(s.state)
}

func (s *MemoryStore) CreatePlayer(ctx context.Context, p *models.Player) error {
	return s.run(func(st *memState) error { return st.CreatePlayer(ctx, p) })
}

func (s *MemoryStore) GetPlayerByID(ctx context.Context, id string) (p *models.Player, err error) {
	err = s.run(func(st *memState) error { p, err = st.GetPlayerByID(ctx, id); return err })
	return p, err
}

func (s *MemoryStore) GetPlayerByNickName(ctx context.Context, nickName string) (p *models.Player, err error) {
	err = s.run(func(st *memState) error { p, err = st.GetPlayerByNickName(ctx, nickName); return err })
	return p, err
}

func (s *MemoryStore) NickNameTaken(ctx context.Context, nickName, excludeID string) (taken bool, err error) {
	err = s.run(func(st *memState) error { taken, err = st.NickNameTaken(ctx, nickName, excludeID); return err })
	return taken, err
}

func (s *MemoryStore) UpdatePlayerNickName(ctx context.Context, id, nickName string) error {
	return s.run(func(st *memState) error { return st.UpdatePlayerNickName(ctx, id, nickName) })
}

func (s *MemoryStore) ApplyPlayerResult(ctx context.Context, id string, goals int, tag models.ResultTag) error {
	return s.run(func(st *memState) error { return st.ApplyPlayerResult(ctx, id, goals, tag) })
}

func (s *MemoryStore) DeletePlayer(ctx context.Context, id string) error {
	return s.run(func(st *memState) error { return st.DeletePlayer(ctx, id) })
}

func (s *MemoryStore) ListPlayers(ctx context.Context) (ps []*models.Player, err error) {
	err = s.run(func(st *memState) error { ps, err = st.ListPlayers(ctx); return err })
	return ps, err
}

func (s *MemoryStore) CreateTeamChoice(ctx context.Context, tc *models.TeamChoice) error {
	return s.run(func(st *memState) error { return st.CreateTeamChoice(ctx, tc) })
}

func (s *MemoryStore) UpsertTeamChoice(ctx context.Context, name string, starsIfNew int) (tc *models.TeamChoice, err error) {
	err = s.run(func(st *memState) error { tc, err = st.UpsertTeamChoice(ctx, name, starsIfNew); return err })
	return tc, err
}

func (s *MemoryStore) GetTeamChoiceByName(ctx context.Context, name string) (tc *models.TeamChoice, err error) {
	err = s.run(func(st *memState) error { tc, err = st.GetTeamChoiceByName(ctx, name); return err })
	return tc, err
}

func (s *MemoryStore) ListTeamChoices(ctx context.Context) (tcs []*models.TeamChoice, err error) {
	err = s.run(func(st *memState) error { tcs, err = st.ListTeamChoices(ctx); return err })
	return tcs, err
}

func (s *MemoryStore) CreateGame(ctx context.Context, g *models.Game) error {
	// a lone CreateGame must not leave a half written game behind
	return s.WithTx(ctx, func(q Querier) error { return q.CreateGame(ctx, g) })
}

func (s *MemoryStore) GetGameByID(ctx context.Context, id string) (g *models.Game, err error) {
	err = s.run(func(st *memState) error { g, err = st.GetGameByID(ctx, id); return err })
	return g, err
}

func (s *MemoryStore) UpdateGameDataMatch(ctx context.Context, id, dataMatch string) error {
	return s.run(func(st *memState) error { return st.UpdateGameDataMatch(ctx, id, dataMatch) })
}

func (s *MemoryStore) DeleteGame(ctx context.Context, id string) error {
	return s.run(func(st *memState) error { return st.DeleteGame(ctx, id) })
}

func (s *MemoryStore) ListGames(ctx context.Context) (gs []*models.Game, err error) {
	err = s.run(func(st *memState) error { gs, err = st.ListGames(ctx); return err })
	return gs, err
}

func (s *MemoryStore) ListGamesByPlayer(ctx context.Context, playerID string) (gs []*models.Game, err error) {
	err = s.run(func(st *memState) error { gs, err = st.ListGamesByPlayer(ctx, playerID); return err })
	return gs, err
}

func (s *MemoryStore) GetTeamInGame(ctx context.Context, gameID string, side models.Side) (t *models.TeamInGame, err error) {
	err = s.run(func(st *memState) error { t, err = st.GetTeamInGame(ctx, gameID, side); return err })
	return t, err
}

func (s *MemoryStore) UpdateTeamInGame(ctx context.Context, t *models.TeamInGame) error {
	return s.run(func(st *memState) error { return st.UpdateTeamInGame(ctx, t) })
}

func (s *MemoryStore) ListTeamsByPlayer(ctx context.Context, playerID string) (ts []*models.TeamInGame, err error) {
	err = s.run(func(st *memState) error { ts, err = st.ListTeamsByPlayer(ctx, playerID); return err })
	return ts, err
}

var _ Store = (*MemoryStore)(nil)

// memState implements Querier without locking. Values handed out are copies.

func (m *memState) stamp() time.Time {
	if m.now == nil {
		return time.Now().UTC()
	}
	return m.now().UTC()
}

func (m *memState) CreatePlayer(_ context.Context, p *models.Player) error {
	if p.ID == "" {
		return fmt.Errorf("could not create player: empty id")
	}
	if _, ok := m.players[p.ID]; ok {
		return fmt.Errorf("player id %s: %w", p.ID, ErrDuplicate)
	}
	for _, other := range m.players {
		if other.NickName == p.NickName {
			return fmt.Errorf("nickname %q: %w", p.NickName, ErrDuplicate)
		}
	}
	now := m.stamp()
	p.NumScoreGoals, p.NumWins, p.NumLoss, p.NumDraw = 0, 0, 0, 0
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	m.players[p.ID] = &cp
	return nil
}

func (m *memState) GetPlayerByID(_ context.Context, id string) (*models.Player, error) {
	p, ok := m.players[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memState) GetPlayerByNickName(_ context.Context, nickName string) (*models.Player, error) {
	for _, p := range m.players {
		if p.NickName == nickName {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memState) NickNameTaken(_ context.Context, nickName, excludeID string) (bool, error) {
	for _, p := range m.players {
		if p.NickName == nickName && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memState) UpdatePlayerNickName(ctx context.Context, id, nickName string) error {
	p, ok := m.players[id]
	if !ok {
		return fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if taken, _ := m.NickNameTaken(ctx, nickName, id); taken {
		return fmt.Errorf("nickname %q: %w", nickName, ErrDuplicate)
	}
	p.NickName = nickName
	p.UpdatedAt = m.stamp()
	return nil
}

func (m *memState) ApplyPlayerResult(_ context.Context, id string, goals int, tag models.ResultTag) error {
	p, ok := m.players[id]
	if !ok {
		return fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	p.NumScoreGoals += goals
	switch tag {
	case models.ResultWinner:
		p.NumWins++
	case models.ResultLoss:
		p.NumLoss++
	case models.ResultDraw:
		p.NumDraw++
	}
	p.UpdatedAt = m.stamp()
	return nil
}

// DeletePlayer nulls the player's slots in every team row (ON DELETE SET NULL).
func (m *memState) DeletePlayer(_ context.Context, id string) error {
	if _, ok := m.players[id]; !ok {
		return fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	delete(m.players, id)
	for _, t := range m.teams {
		if t.PlayerOneID == id {
			t.PlayerOneID = ""
		}
		if t.PlayerTwoID != nil && *t.PlayerTwoID == id {
			t.PlayerTwoID = nil
		}
	}
	return nil
}

func (m *memState) ListPlayers(_ context.Context) ([]*models.Player, error) {
	players := make([]*models.Player, 0, len(m.players))
	for _, p := range m.players {
		cp := *p
		players = append(players, &cp)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].NickName < players[j].NickName })
	return players, nil
}

func (m *memState) teamChoiceByName(name string) *models.TeamChoice {
	for _, tc := range m.teamChoices {
		if tc.Nome == name {
			return tc
		}
	}
	return nil
}

func (m *memState) CreateTeamChoice(_ context.Context, tc *models.TeamChoice) error {
	if m.teamChoiceByName(tc.Nome) != nil {
		return fmt.Errorf("team choice %q: %w", tc.Nome, ErrDuplicate)
	}
	now := m.stamp()
	tc.CreatedAt, tc.UpdatedAt = now, now
	cp := *tc
	m.teamChoices[tc.ID] = &cp
	return nil
}

func (m *memState) UpsertTeamChoice(_ context.Context, name string, starsIfNew int) (*models.TeamChoice, error) {
	now := m.stamp()
	tc := m.teamChoiceByName(name)
	if tc == nil {
		tc = &models.TeamChoice{
			ID:        uuid.NewString(),
			Nome:      name,
			Stars:     starsIfNew,
			CreatedAt: now,
		}
		m.teamChoices[tc.ID] = tc
	}
	tc.NChoices++
	tc.UpdatedAt = now
	cp := *tc
	return &cp, nil
}

func (m *memState) GetTeamChoiceByName(_ context.Context, name string) (*models.TeamChoice, error) {
	tc := m.teamChoiceByName(name)
	if tc == nil {
		return nil, nil
	}
	cp := *tc
	return &cp, nil
}

func (m *memState) ListTeamChoices(_ context.Context) ([]*models.TeamChoice, error) {
	choices := make([]*models.TeamChoice, 0, len(m.teamChoices))
	for _, tc := range m.teamChoices {
		cp := *tc
		choices = append(choices, &cp)
	}
	sort.Slice(choices, func(i, j int) bool {
		if choices[i].NChoices != choices[j].NChoices {
			return choices[i].NChoices > choices[j].NChoices
		}
		return choices[i].Nome < choices[j].Nome
	})
	return choices, nil
}

func (m *memState) CreateGame(_ context.Context, g *models.Game) error {
	if _, ok := m.games[g.ID]; ok {
		return fmt.Errorf("game id %s: %w", g.ID, ErrDuplicate)
	}
	seen := make(map[models.Side]bool)
	for _, t := range g.Teams {
		if seen[t.Side] {
			return fmt.Errorf("side %s of game %s: %w", t.Side, g.ID, ErrDuplicate)
		}
		seen[t.Side] = true
		if _, ok := m.players[t.PlayerOneID]; !ok {
			return fmt.Errorf("could not create team in game: unknown player %s", t.PlayerOneID)
		}
		if t.PlayerTwoID != nil {
			if _, ok := m.players[*t.PlayerTwoID]; !ok {
				return fmt.Errorf("could not create team in game: unknown player %s", *t.PlayerTwoID)
			}
		}
	}

	now := m.stamp()
	g.CreatedAt, g.UpdatedAt = now, now
	m.games[g.ID] = &models.Game{ID: g.ID, DataMatch: g.DataMatch, CreatedAt: now, UpdatedAt: now}
	m.gameOrder = append(m.gameOrder, g.ID)
	for _, t := range g.Teams {
		t.GameID = g.ID
		m.teams[t.ID] = copyTeam(t)
	}
	return nil
}

func (m *memState) gameWithTeams(id string) *models.Game {
	g, ok := m.games[id]
	if !ok {
		return nil
	}
	cp := *g
	cp.Teams = m.teamsWhere(func(t *models.TeamInGame) bool { return t.GameID == id })
	return &cp
}

// teamsWhere returns copies of matching rows ordered by game then side, as the SQL does.
func (m *memState) teamsWhere(match func(t *models.TeamInGame) bool) []*models.TeamInGame {
	var teams []*models.TeamInGame
	for _, t := range m.teams {
		if match(t) {
			teams = append(teams, copyTeam(t))
		}
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].GameID != teams[j].GameID {
			return teams[i].GameID < teams[j].GameID
		}
		return teams[i].Side < teams[j].Side
	})
	return teams
}

func (m *memState) GetGameByID(_ context.Context, id string) (*models.Game, error) {
	return m.gameWithTeams(id), nil
}

func (m *memState) UpdateGameDataMatch(_ context.Context, id, dataMatch string) error {
	g, ok := m.games[id]
	if !ok {
		return fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	g.DataMatch = dataMatch
	g.UpdatedAt = m.stamp()
	return nil
}

func (m *memState) DeleteGame(_ context.Context, id string) error {
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	delete(m.games, id)
	for k, t := range m.teams {
		if t.GameID == id {
			delete(m.teams, k)
		}
	}
	for i, gid := range m.gameOrder {
		if gid == id {
			m.gameOrder = append(m.gameOrder[:i], m.gameOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memState) ListGames(_ context.Context) ([]*models.Game, error) {
	games := make([]*models.Game, 0, len(m.gameOrder))
	for _, id := range m.gameOrder {
		games = append(games, m.gameWithTeams(id))
	}
	return games, nil
}

func (m *memState) ListGamesByPlayer(_ context.Context, playerID string) ([]*models.Game, error) {
	var games []*models.Game
	for _, id := range m.gameOrder {
		g := m.gameWithTeams(id)
		if g.HasPlayer(playerID) {
			games = append(games, g)
		}
	}
	return games, nil
}

func (m *memState) GetTeamInGame(_ context.Context, gameID string, side models.Side) (*models.TeamInGame, error) {
	for _, t := range m.teams {
		if t.GameID == gameID && t.Side == side {
			return copyTeam(t), nil
		}
	}
	return nil, nil
}

func (m *memState) UpdateTeamInGame(_ context.Context, t *models.TeamInGame) error {
	for _, row := range m.teams {
		if row.GameID == t.GameID && row.Side == t.Side {
			row.TeamSelect = t.TeamSelect
			row.Score = t.Score
			row.PlayerOneID = t.PlayerOneID
			row.PlayerTwoID = nil
			if t.PlayerTwoID != nil {
				v := *t.PlayerTwoID
				row.PlayerTwoID = &v
			}
			return nil
		}
	}
	return fmt.Errorf("side %s of game %s: %w", t.Side, t.GameID, ErrNotFound)
}

func (m *memState) ListTeamsByPlayer(_ context.Context, playerID string) ([]*models.TeamInGame, error) {
	return m.teamsWhere(func(t *models.TeamInGame) bool { return t.HasPlayer(playerID) }), nil
}

var _ Querier = (*memState)(nil)
