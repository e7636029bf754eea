package motor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOutputName(t *testing.T) {
	tests := []struct {
		input, ext, want string
	}{
		{"session.har", "", "session.lua"},
		{"dir/session.har", ".lua", filepath.Join("dir", "session.lua")},
		{"dir/session.v2.har", "lua", filepath.Join("dir", "session.v2.lua")},
		{"noext", ".txt", "noext.txt"},
		{".hidden", "", ".hidden.lua"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultOutputName(tt.input, tt.ext))
		})
	}
}

func TestReadHAR_UTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.har")
	require.NoError(t, os.WriteFile(path, []byte(goldenHAR), 0644))

	src, err := ReadHAR(path, "")
	require.NoError(t, err)
	assert.Equal(t, goldenHAR, string(src.Text))
	assert.Equal(t, int64(len(goldenHAR)), src.Size)
	assert.Len(t, src.Hash, 16)

	again, err := ReadHAR(path, "utf-8")
	require.NoError(t, err)
	assert.Equal(t, src.Hash, again.Hash)
}

func TestReadHAR_Latin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.har")
	// "café" with é as the single latin1 byte 0xE9
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xE9}, 0644))

	src, err := ReadHAR(path, "latin1")
	require.NoError(t, err)
	assert.Equal(t, "café", string(src.Text))
	assert.Equal(t, int64(4), src.Size)
}

func TestReadHAR_StripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.har")
	require.NoError(t, os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, goldenHAR...), 0644))

	src, err := ReadHAR(path, "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, goldenHAR, string(src.Text))

	_, err = Convert(src.Text, DefaultOptions())
	assert.NoError(t, err)
}

func TestReadHAR_Errors(t *testing.T) {
	_, err := ReadHAR(filepath.Join(t.TempDir(), "missing.har"), "")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "in.har")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	_, err = ReadHAR(path, "klingon")
	assert.ErrorContains(t, err, "unknown encoding")
}

func TestWriteScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "script.lua")
	require.NoError(t, WriteScript(path, "-- hi\n"))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "-- hi\n", string(written))
}
