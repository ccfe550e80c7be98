package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	apicommon "github.com/vaultguard/sentinel/server/api"
	"github.com/vaultguard/sentinel/x/beneficiary"
)

type Handler struct {
	beneficiaries beneficiary.Store
	log           zerolog.Logger
}

func NewHandler(beneficiaries beneficiary.Store, log zerolog.Logger) *Handler {
	return &Handler{
		beneficiaries: beneficiaries,
		log:           log.With().Str("component", "beneficiary-http").Logger(),
	}
}

type beneficiaryReq struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	list, err := h.beneficiaries.ListByOwner(r.Context(), owner)
	if err != nil {
		apicommon.WriteError(w, r, http.StatusInternalServerError, "internal", err.Error(), nil)
		return
	}
	if list == nil {
		list = []beneficiary.Beneficiary{}
	}

	apicommon.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return
	}

	defer r.Body.Close()

	var req beneficiaryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apicommon.WriteError(w, r, http.StatusBadRequest, "invalid_json", "failed to decode request", nil)
		return
	}

	b, err := h.beneficiaries.Add(r.Context(), owner, req.Email, req.Name)
	if err != nil {
		writeBeneficiaryError(w, r, err)
		return
	}

	apicommon.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := ownerAndIDVars(w, r)
	if !ok {
		return
	}

	b, err := h.beneficiaries.Get(r.Context(), owner, id)
	if err != nil {
		writeBeneficiaryError(w, r, err)
		return
	}

	apicommon.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := ownerAndIDVars(w, r)
	if !ok {
		return
	}

	defer r.Body.Close()

	var req beneficiaryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apicommon.WriteError(w, r, http.StatusBadRequest, "invalid_json", "failed to decode request", nil)
		return
	}

	b, err := h.beneficiaries.Update(r.Context(), owner, id, req.Email, req.Name)
	if err != nil {
		writeBeneficiaryError(w, r, err)
		return
	}

	apicommon.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := ownerAndIDVars(w, r)
	if !ok {
		return
	}

	if err := h.beneficiaries.Remove(r.Context(), owner, id); err != nil {
		writeBeneficiaryError(w, r, err)
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

func ownerAndIDVars(w http.ResponseWriter, r *http.Request) (string, uuid.UUID, bool) {
	owner, ok := ownerVar(w, r)
	if !ok {
		return "", uuid.Nil, false
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		apicommon.WriteError(w, r, http.StatusBadRequest, "invalid_id", "beneficiary id must be a UUID", nil)
		return "", uuid.Nil, false
	}
	return owner, id, true
}

func writeBeneficiaryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, beneficiary.ErrNotFound):
		apicommon.WriteError(w, r, http.StatusNotFound, "not_found", "no such beneficiary for owner", nil)
	case errors.Is(err, beneficiary.ErrInvalidEmail):
		apicommon.WriteError(w, r, http.StatusBadRequest, "invalid_email", "email is required", nil)
	default:
		apicommon.WriteError(w, r, http.StatusInternalServerError, "internal", err.Error(), nil)
	}
}
