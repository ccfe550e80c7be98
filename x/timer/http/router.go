package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterMux binds gorilla/mux routes.
func (h *Handler) RegisterMux(r *mux.Router) {
	r.HandleFunc(routeTimer, h.handleGetTimer).Methods(http.MethodGet).Name(routeNameGetTimer)
	r.HandleFunc(routeTimer, h.handleSetWindow).Methods(http.MethodPut).Name(routeNameSetWindow)
	r.HandleFunc(routeHeartbeat, h.handleHeartbeat).Methods(http.MethodPost).Name(routeNameHeartbeat)
}
