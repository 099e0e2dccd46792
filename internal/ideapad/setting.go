package ideapad

import "fmt"

// Kind identifies which of the device's tunables a Setting changes.
type Kind int

const (
	KindConservationMode Kind = iota
	KindFanMode
)

func (k Kind) String() string {
	switch k {
	case KindConservationMode:
		return "conservation_mode"
	case KindFanMode:
		return "fan_mode"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Attribute returns the name of the sysfs file holding the tunable.
func (k Kind) Attribute() string {
	return k.String()
}

// Setting is a requested change to one tunable.
type Setting struct {
	Kind             Kind
	ConservationMode bool
	FanMode          FanMode
}

func ConservationMode(on bool) Setting {
	return Setting{Kind: KindConservationMode, ConservationMode: on}
}

func Fan(mode FanMode) Setting {
	return Setting{Kind: KindFanMode, FanMode: mode}
}

// Code returns the value written to the tunable's sysfs file.
func (s Setting) Code() uint8 {
	if s.Kind == KindFanMode {
		return s.FanMode.WriteCode()
	}
	if s.ConservationMode {
		return 1
	}
	return 0
}

// ApplyTo returns state with the setting applied.
func (s Setting) ApplyTo(state State) State {
	switch s.Kind {
	case KindConservationMode:
		state.ConservationMode = s.ConservationMode
	case KindFanMode:
		state.FanMode = s.FanMode
	}
	return state
}

func (s Setting) String() string {
	if s.Kind == KindFanMode {
		return s.FanMode.String() + " fan"
	}
	if s.ConservationMode {
		return "conservation mode on"
	}
	return "conservation mode off"
}
