package handlers

import (
	"net/http"
)

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}

	p, err := h.svc.Players.Register(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.CreateResponse(w, Response{Message: "player created", Code: http.StatusCreated, Data: p})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.Players.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: players})
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Players.Remove(r.Context(), pathParam(r, "playerId")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewNickname string `json:"newNickname"`
	}
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}

	if err := h.svc.Players.Rename(r.Context(), pathParam(r, "playerId"), req.NewNickname); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "player renamed", Code: http.StatusOK})
}

func (h *Handler) GetPlayerID(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Players.GetByNickName(r.Context(), pathParam(r, "nickname"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: map[string]string{"id": p.ID}})
}

func (h *Handler) GetTotalWins(w http.ResponseWriter, r *http.Request) {
	wins, err := h.svc.Stats.TotalWins(r.Context(), pathParam(r, "nickname"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: map[string]int{"totalWins": wins}})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats.StatsFor(r.Context(), pathParam(r, "nickname"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: stats})
}

func (h *Handler) ListPlayerGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.Queries.ListForNickname(r.Context(), pathParam(r, "nickname"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: games})
}
