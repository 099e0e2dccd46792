package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

func addRoutes(r *mux.Router, s *Server) {
	r.Handle("/state", s.stateHandler()).Methods(http.MethodGet)
	r.Handle("/conservation", s.conservationHandler()).Methods(http.MethodPost, http.MethodDelete)
	r.Handle("/fan/{mode}", s.fanHandler()).Methods(http.MethodPut)
}
