package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	config "github.com/avvvet/match-services/configs"
	"github.com/avvvet/match-services/internal/matchsvc/feed"
	"github.com/avvvet/match-services/internal/matchsvc/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Players     *service.PlayerService
	TeamChoices *service.TeamChoiceService
	Games       *service.GameService
	Stats       *service.StatsService
	Queries     *service.GameQueryService
}

type Handler struct {
	svc Services
	hub *feed.Hub // nil disables the websocket feed
}

func NewHandler(svc Services, hub *feed.Hub) *Handler {
	return &Handler{svc: svc, hub: hub}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Error encoding response: %v", err)
	}
}

// writeError answers with the status of err. Only unexpected failures are logged.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := service.StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.WithField("request_id", middleware.GetReqID(r.Context())).
			Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
		h.CreateResponse(w, Response{
			Message: "server error, try again",
			Code:    status,
			Error:   http.StatusText(status),
		})
		return
	}

	var e *service.Error
	errors.As(err, &e)
	h.CreateResponse(w, Response{
		Message: e.Message,
		Code:    status,
		Error:   string(e.Kind),
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.CreateResponse(w, Response{
		Message: msg,
		Code:    http.StatusBadRequest,
		Error:   string(service.KindInvalidInput),
	})
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// pathParam returns the decoded value of a route param. chi routes on
// URL.RawPath when it is set (e.g. an escaped "/"), otherwise on the already
// decoded URL.Path.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "match service is running",
		Code:    http.StatusOK,
		Data:    map[string]string{"instanceId": config.GetInstanceId()},
	})
}
