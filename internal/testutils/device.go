package testutils

import (
	"os"
	"path/filepath"
)

// InitDevice creates the attribute files of an ideapad_acpi device in path.
func InitDevice(path, conservationMode, fanMode string) error {
	if err := os.WriteFile(filepath.Join(path, "conservation_mode"), []byte(conservationMode), 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(path, "fan_mode"), []byte(fanMode), 0644)
}
