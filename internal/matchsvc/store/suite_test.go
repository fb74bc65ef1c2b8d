package store

import (
	"context"
	"errors"
	"testing"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite checks the behaviour every Store must share, whatever its backend.
func runStoreSuite(t *testing.T, open func(t *testing.T) Store) {
	t.Run("unique nickname", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		mustPlayer(t, s, "Ana")

		err := s.CreatePlayer(ctx, &models.Player{ID: uuid.NewString(), NickName: "Ana"})
		assert.ErrorIs(t, err, ErrDuplicate)

		rui := mustPlayer(t, s, "Rui")
		err = s.UpdatePlayerNickName(ctx, rui.ID, "Ana")
		assert.ErrorIs(t, err, ErrDuplicate)

		taken, err := s.NickNameTaken(ctx, "Ana", "")
		require.NoError(t, err)
		assert.True(t, taken)
		taken, err = s.NickNameTaken(ctx, "Rui", rui.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("missing rows", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		p, err := s.GetPlayerByNickName(ctx, "Ghost")
		require.NoError(t, err)
		assert.Nil(t, p)

		g, err := s.GetGameByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, g)

		assert.ErrorIs(t, s.DeletePlayer(ctx, uuid.NewString()), ErrNotFound)
		assert.ErrorIs(t, s.DeleteGame(ctx, uuid.NewString()), ErrNotFound)
	})

	t.Run("apply result", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		ana := mustPlayer(t, s, "Ana")

		require.NoError(t, s.ApplyPlayerResult(ctx, ana.ID, 3, models.ResultWinner))
		require.NoError(t, s.ApplyPlayerResult(ctx, ana.ID, 1, models.ResultDraw))

		got, err := s.GetPlayerByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.NumScoreGoals)
		assert.Equal(t, 1, got.NumWins)
		assert.Equal(t, 1, got.NumDraw)
		assert.Zero(t, got.NumLoss)
	})

	t.Run("upsert counts picks", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		for i := 1; i <= 3; i++ {
			tc, err := s.UpsertTeamChoice(ctx, "Porto", 4)
			require.NoError(t, err)
			assert.Equal(t, i, tc.NChoices)
			assert.Equal(t, 4, tc.Stars)
		}

		err := s.CreateTeamChoice(ctx, &models.TeamChoice{ID: uuid.NewString(), Nome: "Porto", Stars: 2, NChoices: 1})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("rollback", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		boom := errors.New("boom")

		err := s.WithTx(ctx, func(q Querier) error {
			if err := q.CreatePlayer(ctx, &models.Player{ID: uuid.NewString(), NickName: "Ana"}); err != nil {
				return err
			}
			if _, err := q.UpsertTeamChoice(ctx, "Porto", 0); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		p, err := s.GetPlayerByNickName(ctx, "Ana")
		require.NoError(t, err)
		assert.Nil(t, p)
		tc, err := s.GetTeamChoiceByName(ctx, "Porto")
		require.NoError(t, err)
		assert.Nil(t, tc)
	})

	t.Run("commit", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		err := s.WithTx(ctx, func(q Querier) error {
			return q.CreatePlayer(ctx, &models.Player{ID: uuid.NewString(), NickName: "Ana"})
		})
		require.NoError(t, err)

		p, err := s.GetPlayerByNickName(ctx, "Ana")
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("games", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		ana, rui, bea := mustPlayer(t, s, "Ana"), mustPlayer(t, s, "Rui"), mustPlayer(t, s, "Bea")

		g1 := mustGame(t, s, ana.ID, rui.ID)
		g2 := mustGame(t, s, bea.ID, rui.ID)

		got, err := s.GetGameByID(ctx, g1.ID)
		require.NoError(t, err)
		require.Len(t, got.Teams, 2)
		assert.Equal(t, models.SideProfit, got.Teams[0].Side)
		assert.Equal(t, ana.ID, got.Team(models.SideProfit).PlayerOneID)

		all, err := s.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, g1.ID, all[0].ID)
		assert.Equal(t, g2.ID, all[1].ID)

		mine, err := s.ListGamesByPlayer(ctx, ana.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Len(t, mine[0].Teams, 2)

		teams, err := s.ListTeamsByPlayer(ctx, rui.ID)
		require.NoError(t, err)
		assert.Len(t, teams, 2)
	})

	t.Run("update team", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		ana, rui, bea := mustPlayer(t, s, "Ana"), mustPlayer(t, s, "Rui"), mustPlayer(t, s, "Bea")
		g := mustGame(t, s, ana.ID, rui.ID)

		team, err := s.GetTeamInGame(ctx, g.ID, models.SideVector)
		require.NoError(t, err)
		require.NotNil(t, team)

		team.Score = 0
		team.TeamSelect = "Braga"
		team.PlayerTwoID = &bea.ID
		require.NoError(t, s.UpdateTeamInGame(ctx, team))
		require.NoError(t, s.UpdateGameDataMatch(ctx, g.ID, "final"))

		got, err := s.GetGameByID(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", got.DataMatch)
		v := got.Team(models.SideVector)
		assert.Zero(t, v.Score)
		assert.Equal(t, "Braga", v.TeamSelect)
		require.NotNil(t, v.PlayerTwoID)
		assert.Equal(t, bea.ID, *v.PlayerTwoID)
		// the result is not editable
		assert.Equal(t, models.ResultLoss, v.ResultTag)

		missing, err := s.GetTeamInGame(ctx, uuid.NewString(), models.SideVector)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("game delete cascades", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		ana, rui := mustPlayer(t, s, "Ana"), mustPlayer(t, s, "Rui")
		g := mustGame(t, s, ana.ID, rui.ID)

		require.NoError(t, s.DeleteGame(ctx, g.ID))

		teams, err := s.ListTeamsByPlayer(ctx, ana.ID)
		require.NoError(t, err)
		assert.Empty(t, teams)
		p, err := s.GetPlayerByID(ctx, ana.ID)
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("player delete keeps games", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		ana, rui := mustPlayer(t, s, "Ana"), mustPlayer(t, s, "Rui")
		g := mustGame(t, s, ana.ID, rui.ID)

		require.NoError(t, s.DeletePlayer(ctx, ana.ID))

		got, err := s.GetGameByID(ctx, g.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.Team(models.SideProfit).PlayerOneID)
		assert.Equal(t, rui.ID, got.Team(models.SideVector).PlayerOneID)
	})
}

func mustPlayer(t *testing.T, s Store, nick string) *models.Player {
	t.Helper()
	p := &models.Player{ID: uuid.NewString(), NickName: nick}
	require.NoError(t, s.CreatePlayer(context.Background(), p))
	return p
}

// mustGame stores a solo game that profitID won 2-1.
func mustGame(t *testing.T, s Store, profitID, vectorID string) *models.Game {
	t.Helper()
	g := &models.Game{
		ID:        uuid.NewString(),
		DataMatch: "2024-01-01",
		Teams: []*models.TeamInGame{
			{ID: uuid.NewString(), Side: models.SideProfit, TeamSelect: "X", Score: 2, ResultTag: models.ResultWinner, PlayerOneID: profitID},
			{ID: uuid.NewString(), Side: models.SideVector, TeamSelect: "Y", Score: 1, ResultTag: models.ResultLoss, PlayerOneID: vectorID},
		},
	}
	err := s.WithTx(context.Background(), func(q Querier) error { return q.CreateGame(context.Background(), g) })
	require.NoError(t, err)
	return g
}
