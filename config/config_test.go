package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPassesValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 10, cfg.NumRefImages)
	require.InDelta(t, 0.005, cfg.PixelChangeThreshold, 1e-9)
	require.Equal(t, 200, cfg.CalibrationDelayMS)
}

func TestValidateClampsBadValues(t *testing.T) {
	cfg := &Config{
		NumRefImages:         -3,
		PixelChangeThreshold: 2.5,
		NoiseFloor:           400,
		SearchWindow:         -1,
		MinOverlapFraction:   0,
		ClaheTileGrid:        0,
		ClaheClipLimit:       0.2,
		CaptureIntervalMS:    0,
	}
	require.NoError(t, cfg.Validate())
	require.Equal(t, 10, cfg.NumRefImages)
	require.InDelta(t, 0.005, cfg.PixelChangeThreshold, 1e-9)
	require.Equal(t, 25, cfg.NoiseFloor)
	require.Equal(t, 5, cfg.SearchWindow)
	require.InDelta(t, 0.5, cfg.MinOverlapFraction, 1e-9)
	require.Equal(t, 8, cfg.ClaheTileGrid)
	require.InDelta(t, 2.0, cfg.ClaheClipLimit, 1e-9)
	require.Equal(t, 100, cfg.CaptureIntervalMS)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.NumRefImages = 4
	cfg.NoiseFloor = 30
	cfg.SelectionX, cfg.SelectionY = 12, 34
	cfg.SelectionW, cfg.SelectionH = 100, 80
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestDebugFromEnv(t *testing.T) {
	t.Setenv("VISION_TESTER_DEBUG", "1")
	require.True(t, DebugFromEnv(false))
	t.Setenv("VISION_TESTER_DEBUG", "false")
	require.False(t, DebugFromEnv(true))
	t.Setenv("VISION_TESTER_DEBUG", "")
	require.True(t, DebugFromEnv(true))
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("VISION_TESTER_CONFIG", "")
	require.Equal(t, "cfg.json", PathFromEnv("cfg.json"))
	t.Setenv("VISION_TESTER_CONFIG", filepath.Join(os.TempDir(), "other.json"))
	require.Equal(t, filepath.Join(os.TempDir(), "other.json"), PathFromEnv("cfg.json"))
}
