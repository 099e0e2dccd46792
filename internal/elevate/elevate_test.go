package elevate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clambin/vantage/internal/elevate"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelper_Write(t *testing.T) {
	tests := []struct {
		name    string
		command []string
		want    string
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "success",
			command: []string{"tee"},
			want:    "1\n",
			wantErr: assert.NoError,
		},
		{
			name:    "helper fails",
			command: []string{"sh", "-c", "exit 126", "sh"},
			wantErr: assert.Error,
		},
		{
			name:    "helper missing",
			command: []string{"/nonexistent/pkexec", "tee"},
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := filepath.Join(t.TempDir(), "conservation_mode")
			h := elevate.Helper{Command: tt.command}

			err := h.Write(context.Background(), target, "1")
			tt.wantErr(t, err)
			if err != nil {
				assert.ErrorIs(t, err, elevate.ErrRejected)
				return
			}
			content, err := os.ReadFile(target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(content))
		})
	}
}

func TestHelper_Write_Cancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	h := elevate.Helper{Command: []string{"sh", "-c", "exec sleep 10", "sh"}}
	err := h.Write(ctx, filepath.Join(t.TempDir(), "fan_mode"), "0")
	assert.ErrorIs(t, err, elevate.ErrRejected)
}

func TestDirect_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/sys/vpc", 0755))

	d := elevate.Direct{FS: fs}
	require.NoError(t, d.Write(context.Background(), "/sys/vpc/fan_mode", "4"))
	content, err := afero.ReadFile(fs, "/sys/vpc/fan_mode")
	require.NoError(t, err)
	assert.Equal(t, "4", string(content))

	ro := elevate.Direct{FS: afero.NewReadOnlyFs(fs)}
	assert.ErrorIs(t, ro.Write(context.Background(), "/sys/vpc/fan_mode", "1"), elevate.ErrRejected)
}

func TestNew(t *testing.T) {
	w, err := elevate.New("direct")
	require.NoError(t, err)
	assert.IsType(t, elevate.Direct{}, w)

	w, err = elevate.New("sudo -n tee")
	require.NoError(t, err)
	assert.Equal(t, elevate.Helper{Command: []string{"sudo", "-n", "tee"}}, w)

	_, err = elevate.New("  ")
	assert.Error(t, err)
}
