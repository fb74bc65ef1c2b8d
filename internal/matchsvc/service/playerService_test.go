package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.players.Register(ctx, "  Ana ")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Ana", p.NickName)
	assert.Zero(t, p.NumScoreGoals)
	assert.Zero(t, p.NumWins+p.NumLoss+p.NumDraw)
	assert.Equal(t, []string{comm.PlayerRegistered}, f.pub.types())

	_, err = f.players.Register(ctx, "Ana")
	assert.ErrorIs(t, err, ErrDuplicateNickname)
	assert.Equal(t, 409, StatusOf(err))

	_, err = f.players.Register(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 400, StatusOf(err))
}

func TestRename(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ps := f.register(t, "Ana", "Rui")

	require.NoError(t, f.players.Rename(ctx, ps["Ana"].ID, "Anabela"))
	assert.Equal(t, "Anabela", f.player(t, "Anabela").NickName)

	// keeping the same nickname is not a conflict with itself
	require.NoError(t, f.players.Rename(ctx, ps["Rui"].ID, "Rui"))

	err := f.players.Rename(ctx, ps["Rui"].ID, "Anabela")
	assert.ErrorIs(t, err, ErrDuplicateNickname)

	err = f.players.Rename(ctx, "missing", "Zed")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 404, StatusOf(err))

	err = f.players.Rename(ctx, ps["Rui"].ID, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ps := f.register(t, "Ana", "Rui")
	g := f.game(t, "Ana", models.ResultWinner, "Rui", models.ResultLoss)

	require.NoError(t, f.players.Remove(ctx, ps["Rui"].ID))

	p, err := f.store.GetPlayerByID(ctx, ps["Rui"].ID)
	require.NoError(t, err)
	assert.Nil(t, p)

	// the game survives with the slot emptied
	stored, err := f.store.GetGameByID(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "", stored.Team(models.SideVector).PlayerOneID)

	err = f.players.Remove(ctx, ps["Rui"].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ps := f.register(t, "Ana")

	ref, err := f.players.ResolveID(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, RefAbsent, ref.Kind)

	ref, err = f.players.ResolveID(ctx, "Ghost")
	require.NoError(t, err)
	assert.Equal(t, RefNotFound, ref.Kind)
	assert.Equal(t, "Ghost", ref.NickName)
	assert.Empty(t, ref.ID)

	ref, err = f.players.ResolveID(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, RefFound, ref.Kind)
	assert.Equal(t, ps["Ana"].ID, ref.ID)
}

func TestGetByNickName(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Ana")

	p, err := f.players.GetByNickName(context.Background(), "Ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.NickName)

	_, err = f.players.GetByNickName(context.Background(), "Ghost")
	assert.True(t, errors.Is(err, ErrPlayerNotFound))
	assert.Equal(t, 404, StatusOf(err))
}
