package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	apicommon "github.com/vaultguard/sentinel/server/api"
	"github.com/vaultguard/sentinel/x/heartbeat"
	"github.com/vaultguard/sentinel/x/timer"
)

type Handler struct {
	timers    timer.Store
	heartbeat *heartbeat.Service
	log       zerolog.Logger
}

func NewHandler(timers timer.Store, hb *heartbeat.Service, log zerolog.Logger) *Handler {
	return &Handler{
		timers:    timers,
		heartbeat: hb,
		log:       log.With().Str("component", "timer-http").Logger(),
	}
}

type setWindowReq struct {
	TimeoutDays int `json:"timeout_days"`
}

type checkinResp struct {
	LastCheckin time.Time `json:"last_checkin"`
	Deadline    time.Time `json:"deadline"`
}

func (h *Handler) handleGetTimer(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	t, err := h.timers.Get(r.Context(), owner)
	if err != nil {
		writeTimerError(w, r, err)
		return
	}

	apicommon.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) handleSetWindow(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	defer r.Body.Close()

	var req setWindowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apicommon.WriteError(w, r, http.StatusBadRequest, "invalid_json", "failed to decode request", nil)
		return
	}

	t, err := h.timers.SetTimeout(r.Context(), owner, req.TimeoutDays)
	if err != nil {
		writeTimerError(w, r, err)
		return
	}

	apicommon.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	t, err := h.heartbeat.Checkin(r.Context(), owner)
	if err != nil {
		writeTimerError(w, r, err)
		return
	}

	apicommon.WriteJSON(w, http.StatusOK, checkinResp{
		LastCheckin: t.LastCheckin,
		Deadline:    t.Deadline,
	})
}

func ownerVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := strings.TrimSpace(mux.Vars(r)["owner"])
	if owner == "" {
		apicommon.WriteError(w, r, http.StatusBadRequest, "missing_owner", "provide an owner identifier", nil)
		return "", false
	}
	return owner, true
}

func writeTimerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, timer.ErrNotFound):
		apicommon.WriteError(w, r, http.StatusNotFound, "not_found", "no timer for owner", nil)
	case errors.Is(err, timer.ErrInvalidTimeout):
		apicommon.WriteError(w, r, http.StatusBadRequest, "invalid_timeout", "timeout_days must be positive", nil)
	case errors.Is(err, timer.ErrAlreadyExists):
		apicommon.WriteError(w, r, http.StatusConflict, "already_exists", "timer already exists for owner", nil)
	default:
		apicommon.WriteError(w, r, http.StatusInternalServerError, "internal", err.Error(), nil)
	}
}
