package ideapad_test

import (
	"testing"

	"github.com/clambin/vantage/internal/ideapad"
	"github.com/clambin/vantage/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevice_ReadState(t *testing.T) {
	tests := []struct {
		name         string
		conservation string
		fan          string
		want         ideapad.State
		wantErr      assert.ErrorAssertionFunc
	}{
		{
			name:         "conservation off",
			conservation: "0\n",
			fan:          "1\n",
			want:         ideapad.State{ConservationMode: false, FanMode: ideapad.Standard},
			wantErr:      assert.NoError,
		},
		{
			name:         "conservation on",
			conservation: "1",
			fan:          "2",
			want:         ideapad.State{ConservationMode: true, FanMode: ideapad.DustCleaning},
			wantErr:      assert.NoError,
		},
		{
			name:         "any nonzero value is on",
			conservation: "7",
			fan:          "3",
			want:         ideapad.State{ConservationMode: true, FanMode: ideapad.EfficientThermalDissipation},
			wantErr:      assert.NoError,
		},
		{
			name:         "legacy super silent",
			conservation: "0",
			fan:          "133",
			want:         ideapad.State{FanMode: ideapad.SuperSilent},
			wantErr:      assert.NoError,
		},
		{
			name:         "undefined fan mode",
			conservation: "0",
			fan:          "4",
			wantErr:      assert.Error,
		},
		{
			name:         "bad conservation mode",
			conservation: "yes",
			fan:          "0",
			wantErr:      assert.Error,
		},
		{
			name:         "missing conservation mode",
			fan:          "0",
			wantErr:      assert.Error,
		},
		{
			name:         "missing fan mode",
			conservation: "0",
			wantErr:      assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			dev := ideapad.Device{Path: "/sys/vpc", FS: fs}
			if tt.conservation != "" {
				require.NoError(t, afero.WriteFile(fs, "/sys/vpc/conservation_mode", []byte(tt.conservation), 0644))
			}
			if tt.fan != "" {
				require.NoError(t, afero.WriteFile(fs, "/sys/vpc/fan_mode", []byte(tt.fan), 0644))
			}

			got, err := dev.ReadState()
			tt.wantErr(t, err)
			if err == nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDevice_ReadFanMode_Unknown(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/sys/vpc/fan_mode", []byte("4"), 0644))

	_, err := ideapad.Device{Path: "/sys/vpc", FS: fs}.ReadFanMode()
	assert.ErrorIs(t, err, ideapad.ErrUnknownFanMode)
}

func TestDevice_OSFilesystem(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, testutils.InitDevice(tmpDir, "1\n", "0\n"))

	got, err := ideapad.Device{Path: tmpDir}.ReadState()
	require.NoError(t, err)
	assert.Equal(t, ideapad.State{ConservationMode: true, FanMode: ideapad.SuperSilent}, got)
}

func TestDevice_DefaultPath(t *testing.T) {
	assert.Equal(t, ideapad.DefaultPath+"/fan_mode", ideapad.Device{}.Attribute(ideapad.KindFanMode).Path())
}
