package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterMux binds gorilla/mux routes.
func (h *Handler) RegisterMux(r *mux.Router) {
	r.HandleFunc(routeAccounts, h.handleCreate).Methods(http.MethodPost).Name(routeNameCreate)
	r.HandleFunc(routeAccount, h.handleGet).Methods(http.MethodGet).Name(routeNameGet)
	r.HandleFunc(routeAccount, h.handleDestroy).Methods(http.MethodDelete).Name(routeNameDestroy)
}
