package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 15.0, cfg.Zoom.DeadZone)
	assert.Equal(t, 300.0, cfg.Zoom.MinStaticDuration)
	assert.Equal(t, 100.0, cfg.Cursor.ShapeLookahead)
	assert.Equal(t, 1000.0, cfg.Cursor.HideDelay)
	assert.Equal(t, 2.0, cfg.Cursor.StaticThreshold)
	assert.Equal(t, 200.0, cfg.Click.Duration)
	assert.Equal(t, 0.8, cfg.Click.ScaleFloor)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursorcast.yaml")
	data := `
width: 1081
height: 1920
zoom:
  level: 0.5
  dead_zone: 30
cursor:
  hide_when_static: true
motion_blur:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1082, cfg.Width)
	assert.Equal(t, 1920, cfg.Height)
	assert.Equal(t, 1.0, cfg.Zoom.Level, "zoom never goes below 1")
	assert.Equal(t, 30.0, cfg.Zoom.DeadZone)
	assert.Equal(t, 300.0, cfg.Zoom.MinStaticDuration)
	assert.True(t, cfg.Zoom.Enabled)
	assert.True(t, cfg.Cursor.HideWhenStatic)
	assert.False(t, cfg.Blur.Enabled)
	assert.Equal(t, 25, cfg.Blur.MaxLength)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [1, 2"), 0644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset string
		w, h   int
	}{
		{"16:9", 1920, 1080},
		{"9:16", 1080, 1920},
		{"4:5", 1080, 1350},
		{"cinema", 640, 480},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg := Default()
			cfg.Width, cfg.Height = 640, 480
			cfg.ApplyPreset(tt.preset)
			assert.Equal(t, tt.w, cfg.Width)
			assert.Equal(t, tt.h, cfg.Height)
		})
	}
}

func TestNormalizeClampsInvalid(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 32.0, cfg.Cursor.Size)
	assert.Equal(t, 100.0, cfg.Cursor.ShapeLookahead)
	assert.Equal(t, 1.0, cfg.Zoom.Level)
	assert.Equal(t, 0.8, cfg.Click.ScaleFloor)
	assert.Equal(t, 3, cfg.Blur.MinLength)
}

func TestCursorNormalizePartialBlock(t *testing.T) {
	// a recording that only sets the color must still get a working cursor
	c := CursorConfig{Color: "#ff0000"}
	c.Normalize()
	assert.Equal(t, "#ff0000", c.Color)
	assert.Equal(t, 100.0, c.ShapeLookahead)
	assert.Equal(t, 32.0, c.Size)
	assert.Equal(t, "arrow", c.Shape)
}
