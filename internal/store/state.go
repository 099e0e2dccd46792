package store

import (
	"strconv"

	"github.com/clambin/vantage/internal/ideapad"
	"github.com/clambin/vantage/internal/panel"
	log "github.com/sirupsen/logrus"
)

const (
	conservationModeKey = "conservation-mode"
	fanModeKey          = "fan-mode"
)

// SaveState records the state as the last one applied to the device.
func (s *Store) SaveState(state ideapad.State) error {
	return s.Set(map[string]string{
		conservationModeKey: strconv.FormatBool(state.ConservationMode),
		fanModeKey:          state.FanMode.String(),
	})
}

// LoadState returns the last state recorded by SaveState. The second return value is false if no state was recorded.
func (s *Store) LoadState() (ideapad.State, bool, error) {
	var state ideapad.State
	conservationMode, ok, err := s.GetBool(conservationModeKey)
	if err != nil || !ok {
		return state, false, err
	}
	fanMode, ok, err := s.Get(fanModeKey)
	if err != nil || !ok {
		return state, false, err
	}
	state.ConservationMode = conservationMode
	if state.FanMode, err = ideapad.ParseFanMode(fanMode); err != nil {
		return state, false, err
	}
	return state, true, nil
}

// Observe records the device's state each time a setting is applied.
func (s *Store) Observe(e panel.Event) {
	if e.Phase != panel.Applied {
		return
	}
	if err := s.SaveState(e.State); err != nil {
		log.WithError(err).WithField("path", s.Path).Warning("failed to save settings")
	}
}
