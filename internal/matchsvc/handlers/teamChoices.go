package handlers

import (
	"net/http"
)

func (h *Handler) CreateTeamChoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Stars int    `json:"stars"`
	}
	if err := decode(r, &req); err != nil {
		h.badRequest(w, "malformed request body")
		return
	}

	tc, err := h.svc.TeamChoices.Register(r.Context(), req.Name, req.Stars)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "team choice created", Code: http.StatusCreated, Data: tc})
}

func (h *Handler) ListTeamChoices(w http.ResponseWriter, r *http.Request) {
	choices, err := h.svc.TeamChoices.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: choices})
}

func (h *Handler) GetTeamChoiceCount(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	n, err := h.svc.TeamChoices.GetSelectionCount(r.Context(), name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: map[string]any{"name": name, "nChoices": n}})
}
