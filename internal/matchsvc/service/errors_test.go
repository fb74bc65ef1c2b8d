package service

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{newError(KindInvalidInput, "x"), http.StatusBadRequest},
		{newError(KindInvalidTeamCount, "x"), http.StatusBadRequest},
		{newError(KindDuplicatePlayerInTeam, "x"), http.StatusBadRequest},
		{newError(KindMissingTeamChoiceName, "x"), http.StatusBadRequest},
		{newError(KindNotFound, "x"), http.StatusNotFound},
		{newError(KindPlayerNotFound, "x"), http.StatusNotFound},
		{newError(KindDuplicateNickname, "x"), http.StatusConflict},
		{newError(KindDuplicateTeamName, "x"), http.StatusConflict},
		{fmt.Errorf("wrapped: %w", newError(KindNotFound, "x")), http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.err), tt.err.Error())
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("ctx: %w", newError(KindPlayerNotFound, "player %s not found", "Ana"))
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "player Ana not found")
}
