package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)
		if h.hub != nil {
			r.Get("/ws", h.hub.ServeWS)
		}

		r.Route("/players", func(r chi.Router) {
			// a taken nickname answers 409 Conflict on create and rename alike
			r.Post("/", h.CreatePlayer)
			r.Get("/", h.ListPlayers)
			r.Put("/{playerId}", h.RenamePlayer)
			r.Delete("/{playerId}", h.DeletePlayer)

			r.Route("/by-nick/{nickname}", func(r chi.Router) {
				r.Get("/", h.GetPlayerID)
				r.Get("/wins", h.GetTotalWins)
				r.Get("/stats", h.GetStats)
				r.Get("/games", h.ListPlayerGames)
			})
		})

		r.Route("/games", func(r chi.Router) {
			r.Post("/", h.CreateGame)
			r.Get("/", h.ListGames)

			r.Route("/{gameId}", func(r chi.Router) {
				r.Get("/", h.GetGame)
				r.Delete("/", h.DeleteGame)
				r.Put("/{side}", h.UpdateTeamInGame)
				r.Patch("/{side}", h.UpdateTeamInGame)
			})
		})

		r.Route("/team-choices", func(r chi.Router) {
			r.Post("/", h.CreateTeamChoice)
			r.Get("/", h.ListTeamChoices)
			r.Get("/{name}/count", h.GetTeamChoiceCount)
		})
	})
}
