package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInit_WritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	closer, err := Init("warn", dir)
	require.NoError(t, err)

	slog.Info("hidden message")
	slog.Warn("visible message", "board_id", "b1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "kanboard.log"))
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.Contains(out, "visible message"))
	assert.True(t, strings.Contains(out, "board_id=b1"))
	assert.False(t, strings.Contains(out, "hidden message"))
}

func TestInit_BadLevel(t *testing.T) {
	_, err := Init("chatty", t.TempDir())
	assert.Error(t, err)
}
