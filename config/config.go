package config

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the inspection pipeline and app
// behavior. Fields may be loaded from a JSON file; a .env file can override
// the config path and debug flag (see PathFromEnv).
type Config struct {
	Debug bool `json:"debug"`

	// Calibration parameters
	NumRefImages       int `json:"num_ref_images"`
	CalibrationDelayMS int `json:"calibration_delay_ms"`

	// Decision parameters
	PixelChangeThreshold float64 `json:"pixel_change_threshold"`
	NoiseFloor           int     `json:"noise_floor"`

	// Alignment parameters
	SearchWindow       int     `json:"alignment_search_window"`
	MinOverlapFraction float64 `json:"min_overlap_fraction"`

	// Preprocessing parameters. ClaheTileGrid is the number of tiles per
	// image side, matching the 8x8 tile grid convention.
	ClaheTileGrid  int     `json:"clahe_tile_size"`
	ClaheClipLimit float64 `json:"clahe_clip_limit"`

	// Capture behavior. CameraDevice selects a video device index for frame
	// acquisition; -1 uses screen capture instead.
	CaptureIntervalMS int `json:"capture_interval_ms"`
	CameraDevice      int `json:"camera_device"`

	// Optional directory where sealed reference sets are exported as PNGs
	// for inspection. Empty disables the export.
	RefDir string `json:"ref_dir"`

	// Selection rectangle persistence (ROI in screen coordinates)
	SelectionX int `json:"selection_x"`
	SelectionY int `json:"selection_y"`
	SelectionW int `json:"selection_w"`
	SelectionH int `json:"selection_h"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                false,
		NumRefImages:         10,
		CalibrationDelayMS:   200,
		PixelChangeThreshold: 0.005,
		NoiseFloor:           25,
		SearchWindow:         5,
		MinOverlapFraction:   0.5,
		ClaheTileGrid:        8,
		ClaheClipLimit:       2.0,
		CaptureIntervalMS:    100,
		CameraDevice:         -1,
		RefDir:               "",
		SelectionX:           0,
		SelectionY:           0,
		SelectionW:           0,
		SelectionH:           0,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.NumRefImages <= 0 {
		c.NumRefImages = 10
	}
	if c.CalibrationDelayMS < 0 {
		c.CalibrationDelayMS = 200
	}
	if c.PixelChangeThreshold <= 0 || c.PixelChangeThreshold > 1 {
		c.PixelChangeThreshold = 0.005
	}
	if c.NoiseFloor <= 0 || c.NoiseFloor > 255 {
		c.NoiseFloor = 25
	}
	if c.SearchWindow < 0 {
		c.SearchWindow = 5
	}
	if c.MinOverlapFraction <= 0 || c.MinOverlapFraction > 1 {
		c.MinOverlapFraction = 0.5
	}
	if c.ClaheTileGrid <= 0 {
		c.ClaheTileGrid = 8
	}
	if c.ClaheClipLimit < 1 {
		c.ClaheClipLimit = 2.0
	}
	if c.CaptureIntervalMS <= 0 {
		c.CaptureIntervalMS = 100
	}
	return nil
}

// PathFromEnv resolves the config file path. It loads a .env file when
// present (missing files are ignored) and honors VISION_TESTER_CONFIG;
// fallback is the provided default path.
func PathFromEnv(fallback string) string {
	_ = godotenv.Load()
	if p := os.Getenv("VISION_TESTER_CONFIG"); p != "" {
		return p
	}
	return fallback
}

// DebugFromEnv reports whether VISION_TESTER_DEBUG requests debug logging,
// overriding the file-based flag when set.
func DebugFromEnv(fileValue bool) bool {
	switch os.Getenv("VISION_TESTER_DEBUG") {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	return fileValue
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON error it returns
// defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
