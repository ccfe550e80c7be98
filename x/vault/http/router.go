package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterMux binds gorilla/mux routes.
func (h *Handler) RegisterMux(r *mux.Router) {
	r.HandleFunc(routeVault, h.handleGet).Methods(http.MethodGet).Name(routeNameGetVault)
	r.HandleFunc(routeVault, h.handlePut).Methods(http.MethodPut).Name(routeNamePutVault)
	r.HandleFunc(routeVault, h.handleDelete).Methods(http.MethodDelete).Name(routeNameDeleteVault)
}
