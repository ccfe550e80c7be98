package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	apicommon "github.com/vaultguard/sentinel/server/api"
	"github.com/vaultguard/sentinel/x/vault"
)

type Handler struct {
	vaults vault.Store
	log    zerolog.Logger
}

func NewHandler(vaults vault.Store, log zerolog.Logger) *Handler {
	return &Handler{
		vaults: vaults,
		log:    log.With().Str("component", "vault-http").Logger(),
	}
}

type putVaultReq struct {
	Name          string `json:"name"`
	EncryptedData string `json:"encrypted_data"`
	ClientSalt    string `json:"client_salt"`
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	snap, present, err := h.vaults.Snapshot(r.Context(), owner)
	if err != nil {
		apicommon.WriteError(w, r, http.StatusInternalServerError, "internal", err.Error(), nil)
		return
	}
	if !present {
		apicommon.WriteError(w, r, http.StatusNotFound, "not_found", "no vault for owner", nil)
		return
	}

	apicommon.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	defer r.Body.Close()

	var req putVaultReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apicommon.WriteError(w, r, http.StatusBadRequest, "invalid_json", "failed to decode request", nil)
		return
	}

	snap, err := h.vaults.Put(r.Context(), owner, req.Name, req.EncryptedData, req.ClientSalt)
	if err != nil {
		apicommon.WriteError(w, r, http.StatusInternalServerError, "internal", err.Error(), nil)
		return
	}

	apicommon.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	if err := h.vaults.Delete(r.Context(), owner); err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			apicommon.WriteError(w, r, http.StatusNotFound, "not_found", "no vault for owner", nil)
			return
		}
		apicommon.WriteError(w, r, http.StatusInternalServerError, "internal", err.Error(), nil)
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
