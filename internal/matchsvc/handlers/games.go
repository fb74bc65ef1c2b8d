package handlers

import (
	"net/http"
	"strings"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/service"
)

type createGameRequest struct {
	DataMatch string              `json:"dataMatch"`
	Teams     []service.TeamEntry `json:"teams"`
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}

	game, err := h.svc.Games.RecordGame(r.Context(), req.DataMatch, req.Teams)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "game recorded", Code: http.StatusCreated, Data: game})
}

// ListGames returns every game, or only those of ?nickname= when given.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	nickName := r.URL.Query().Get("nickname")
	if nickName == "" {
		nickName = service.AllPlayers
	}

	games, err := h.svc.Queries.ListForNickname(r.Context(), nickName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: games})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.svc.Queries.Get(r.Context(), pathParam(r, "gameId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: game})
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Games.DeleteGame(r.Context(), pathParam(r, "gameId")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateTeamInGame(w http.ResponseWriter, r *http.Request) {
	var patch service.TeamPatch
	if err := decode(r, &patch); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}

	side := models.Side(strings.ToUpper(pathParam(r, "side")))
	team, err := h.svc.Games.UpdateTeamInGame(r.Context(), pathParam(r, "gameId"), side, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "team updated", Code: http.StatusOK, Data: team})
}
