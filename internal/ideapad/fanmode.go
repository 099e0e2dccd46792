package ideapad

import (
	"errors"
	"fmt"
)

// FanMode is the cooling profile of the embedded controller.
type FanMode int

const (
	SuperSilent FanMode = iota
	Standard
	DustCleaning
	EfficientThermalDissipation
)

// FanModes lists all fan modes, in the order a panel presents them.
var FanModes = []FanMode{SuperSilent, Standard, DustCleaning, EfficientThermalDissipation}

// ErrUnknownFanMode is returned when the driver reports a fan_mode value with no known meaning.
var ErrUnknownFanMode = errors.New("unknown fan mode")

var fanModeNames = map[FanMode]string{
	SuperSilent:                 "super-silent",
	Standard:                    "standard",
	DustCleaning:                "dust-cleaning",
	EfficientThermalDissipation: "efficient-thermal-dissipation",
}

func (m FanMode) String() string {
	if name, ok := fanModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("FanMode(%d)", int(m))
}

// ParseFanMode returns the fan mode with the given name, as returned by String.
func ParseFanMode(name string) (FanMode, error) {
	for mode, modeName := range fanModeNames {
		if name == modeName {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFanMode, name)
}

// DecodeFanMode maps the value read from fan_mode to a FanMode.
// 133 is reported by some firmware for super-silent.
func DecodeFanMode(code uint8) (FanMode, error) {
	switch code {
	case 0, 133:
		return SuperSilent, nil
	case 1:
		return Standard, nil
	case 2:
		return DustCleaning, nil
	case 3:
		return EfficientThermalDissipation, nil
	default:
		return 0, fmt.Errorf("%w: code %d", ErrUnknownFanMode, code)
	}
}

// WriteCode returns the value to write to fan_mode to select the mode.
// The driver expects 4 for efficient thermal dissipation, even though it reports that mode as 3.
func (m FanMode) WriteCode() uint8 {
	switch m {
	case SuperSilent:
		return 0
	case Standard:
		return 1
	case DustCleaning:
		return 2
	case EfficientThermalDissipation:
		return 4
	}
	panic(fmt.Sprintf("invalid fan mode %d", int(m)))
}

func (m FanMode) MarshalText() ([]byte, error) {
	if _, ok := fanModeNames[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFanMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *FanMode) UnmarshalText(text []byte) (err error) {
	*m, err = ParseFanMode(string(text))
	return err
}
