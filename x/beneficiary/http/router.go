package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterMux binds gorilla/mux routes.
func (h *Handler) RegisterMux(r *mux.Router) {
	r.HandleFunc(routeBeneficiaries, h.handleList).Methods(http.MethodGet).Name(routeNameList)
	r.HandleFunc(routeBeneficiaries, h.handleAdd).Methods(http.MethodPost).Name(routeNameAdd)
	r.HandleFunc(routeBeneficiary, h.handleGet).Methods(http.MethodGet).Name(routeNameGet)
	r.HandleFunc(routeBeneficiary, h.handleUpdate).Methods(http.MethodPut).Name(routeNameUpdate)
	r.HandleFunc(routeBeneficiary, h.handleRemove).Methods(http.MethodDelete).Name(routeNameRemove)
}
