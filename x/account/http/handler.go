package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	apicommon "github.com/vaultguard/sentinel/server/api"
	"github.com/vaultguard/sentinel/x/account"
)

type Handler struct {
	accounts *account.Service
	log      zerolog.Logger
}

func NewHandler(accounts *account.Service, log zerolog.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		log:      log.With().Str("component", "account-http").Logger(),
	}
}

type createAccountReq struct {
	Email string `json:"email"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req createAccountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apicommon.WriteError(w, r, http.StatusBadRequest, "invalid_json", "failed to decode request", nil)
		return
	}

	acc, err := h.accounts.Create(r.Context(), req.Email)
	if err != nil {
		writeAccountError(w, r, err)
		return
	}

	apicommon.WriteJSON(w, http.StatusCreated, acc)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	acc, err := h.accounts.Get(r.Context(), owner)
	if err != nil {
		writeAccountError(w, r, err)
		return
	}

	apicommon.WriteJSON(w, http.StatusOK, acc)
}

func (h *Handler) handleDestroy(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	if err := h.accounts.Destroy(r.Context(), owner); err != nil {
		writeAccountError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func ownerVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := strings.TrimSpace(mux.Vars(r)["owner"])
	if owner == "" {
		apicommon.WriteError(w, r, http.StatusBadRequest, "missing_owner", "provide an owner identifier", nil)
		return "", false
	}
	return owner, true
}

func writeAccountError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, account.ErrNotFound):
		apicommon.WriteError(w, r, http.StatusNotFound, "not_found", "no such account", nil)
	case errors.Is(err, account.ErrAlreadyExists):
		apicommon.WriteError(w, r, http.StatusConflict, "already_exists", "an account with this email already exists", nil)
	case errors.Is(err, account.ErrInvalidEmail):
		apicommon.WriteError(w, r, http.StatusBadRequest, "invalid_email", "email is required", nil)
	default:
		apicommon.WriteError(w, r, http.StatusInternalServerError, "internal", err.Error(), nil)
	}
}
