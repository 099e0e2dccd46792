package sysfs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttribute_ReadUint8(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    uint8
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "plain",
			content: "1",
			want:    1,
			wantErr: assert.NoError,
		},
		{
			name:    "newline",
			content: "0\n",
			want:    0,
			wantErr: assert.NoError,
		},
		{
			name:    "padded",
			content: " 133 \n",
			want:    133,
			wantErr: assert.NoError,
		},
		{
			name:    "too large",
			content: "256",
			wantErr: assert.Error,
		},
		{
			name:    "not a number",
			content: "on",
			wantErr: assert.Error,
		},
		{
			name:    "empty",
			content: "",
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/dev/value", []byte(tt.content), 0644))

			got, err := New(fs, "/dev", "value").ReadUint8()
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttribute_Missing(t *testing.T) {
	a := New(afero.NewMemMapFs(), "/dev", "value")
	_, err := a.Read()
	assert.Error(t, err)
	_, err = a.ReadUint8()
	assert.Error(t, err)
}

func TestAttribute_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/dev", 0755))
	a := New(fs, "/dev", "value")
	assert.Equal(t, "/dev/value", a.Path())

	require.NoError(t, a.WriteUint8(4))
	got, err := a.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(4), got)

	require.NoError(t, a.Write("0"))
	content, err := afero.ReadFile(fs, "/dev/value")
	require.NoError(t, err)
	assert.Equal(t, "0", string(content))
}
