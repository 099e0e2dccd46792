package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clambin/vantage/internal/ideapad"
	"github.com/clambin/vantage/internal/panel"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// StateResponse is returned by GET /state and after every write. After a failed write, State holds the
// unchanged state, so clients can revert their controls.
type StateResponse struct {
	ideapad.State
	Busy  bool   `json:"busy"`
	Error string `json:"error,omitempty"`
}

func (s *Server) stateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.available(w) {
			return
		}
		s.writeState(w, http.StatusOK, nil)
	})
}

func (s *Server) conservationHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.available(w) {
			return
		}
		var on bool
		var status int
		switch r.Method {
		case http.MethodPost:
			on = true
			status = http.StatusCreated
		case http.MethodDelete:
			on = false
			status = http.StatusNoContent
		default:
			http.Error(w, "invalid method: "+r.Method, http.StatusMethodNotAllowed)
			return
		}
		s.apply(w, r, ideapad.ConservationMode(on), status)
	})
}

func (s *Server) fanHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.available(w) {
			return
		}
		mode, err := ideapad.ParseFanMode(mux.Vars(r)["mode"])
		if err != nil {
			http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
			return
		}
		s.apply(w, r, ideapad.Fan(mode), http.StatusOK)
	})
}

func (s *Server) available(w http.ResponseWriter) bool {
	if s.startupErr != nil {
		http.Error(w, "device not available: "+s.startupErr.Error(), http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request, setting ideapad.Setting, status int) {
	err := s.panel.Apply(r.Context(), setting)
	switch {
	case err == nil:
		log.WithField("setting", setting.String()).Debug(r.URL.Path)
		if status == http.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		s.writeState(w, status, nil)
	case errors.Is(err, panel.ErrBusy):
		s.writeState(w, http.StatusConflict, err)
	default:
		s.writeState(w, http.StatusBadGateway, err)
	}
}

func (s *Server) writeState(w http.ResponseWriter, status int, err error) {
	response := StateResponse{
		State: s.panel.State(),
		Busy:  s.panel.Busy(),
	}
	if err != nil {
		response.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err = enc.Encode(response); err != nil {
		log.WithError(err).Warning("failed to encode state")
	}
}
