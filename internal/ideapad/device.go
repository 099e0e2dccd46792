package ideapad

import (
	"fmt"

	"github.com/clambin/vantage/pkg/sysfs"
	"github.com/spf13/afero"
)

// DefaultPath is where the ideapad_acpi driver exposes its tunables.
const DefaultPath = "/sys/bus/platform/drivers/ideapad_acpi/VPC2004:00"

// State mirrors the tunables of the device.
type State struct {
	ConservationMode bool    `json:"conservation_mode" yaml:"conservation_mode"`
	FanMode          FanMode `json:"fan_mode" yaml:"fan_mode"`
}

// Settings returns the settings that, applied in order, produce the state.
func (s State) Settings() []Setting {
	return []Setting{ConservationMode(s.ConservationMode), Fan(s.FanMode)}
}

// Device is the driver's sysfs directory. If FS is nil, the OS filesystem is used.
type Device struct {
	Path string
	FS   afero.Fs
}

func (d Device) Attribute(kind Kind) sysfs.Attribute {
	path := d.Path
	if path == "" {
		path = DefaultPath
	}
	return sysfs.New(d.FS, path, kind.Attribute())
}

// ReadState reads all tunables of the device.
func (d Device) ReadState() (state State, err error) {
	if state.ConservationMode, err = d.ReadConservationMode(); err != nil {
		return state, err
	}
	state.FanMode, err = d.ReadFanMode()
	return state, err
}

func (d Device) ReadConservationMode() (bool, error) {
	code, err := d.Attribute(KindConservationMode).ReadUint8()
	if err != nil {
		return false, fmt.Errorf("conservation mode: %w", err)
	}
	return code != 0, nil
}

func (d Device) ReadFanMode() (FanMode, error) {
	code, err := d.Attribute(KindFanMode).ReadUint8()
	if err != nil {
		return 0, fmt.Errorf("fan mode: %w", err)
	}
	mode, err := DecodeFanMode(code)
	if err != nil {
		return 0, fmt.Errorf("fan mode: %w", err)
	}
	return mode, nil
}
