package sysfs

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Attribute is a single kernel attribute file, e.g. /sys/bus/platform/drivers/ideapad_acpi/VPC2004:00/fan_mode.
type Attribute struct {
	fs   afero.Fs
	path string
}

// New returns the attribute called name in directory dir. If fs is nil, the OS filesystem is used.
func New(fs afero.Fs, dir, name string) Attribute {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return Attribute{
		fs:   fs,
		path: filepath.Join(dir, name),
	}
}

func (a Attribute) Path() string {
	return a.path
}

// Read returns the attribute's content with surrounding whitespace removed.
func (a Attribute) Read() (string, error) {
	content, err := afero.ReadFile(a.fs, a.path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

// ReadUint8 parses the attribute as an unsigned 8-bit integer.
func (a Attribute) ReadUint8() (uint8, error) {
	content, err := a.Read()
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(content, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", a.path, err)
	}
	return uint8(value), nil
}

func (a Attribute) Write(value string) error {
	return afero.WriteFile(a.fs, a.path, []byte(value), 0644)
}

func (a Attribute) WriteUint8(value uint8) error {
	return a.Write(strconv.Itoa(int(value)))
}
