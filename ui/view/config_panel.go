package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/vision-tester-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("numRefImages", "Reference Images", fmt.Sprintf("%d", c.NumRefImages))
	makeRow("calibrationDelayMS", "Calibration Delay (ms)", fmt.Sprintf("%d", c.CalibrationDelayMS))
	makeRow("pixelChangeThreshold", "Change Threshold (0-1)", fmt.Sprintf("%.4f", c.PixelChangeThreshold))
	makeRow("noiseFloor", "Noise Floor (0-255)", fmt.Sprintf("%d", c.NoiseFloor))
	makeRow("searchWindow", "Alignment Window (px)", fmt.Sprintf("%d", c.SearchWindow))
	makeRow("minOverlapFraction", "Min Overlap (0-1)", fmt.Sprintf("%.2f", c.MinOverlapFraction))
	makeRow("claheTileGrid", "CLAHE Tiles Per Side", fmt.Sprintf("%d", c.ClaheTileGrid))
	makeRow("claheClipLimit", "CLAHE Clip Limit", fmt.Sprintf("%.2f", c.ClaheClipLimit))
	makeRow("captureIntervalMS", "Capture Interval (ms)", fmt.Sprintf("%d", c.CaptureIntervalMS))
	makeRow("refDir", "Reference Export Dir", c.RefDir)
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignFloat := func(id string, dst *float64) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if f, ok := parseFloatField(strings.TrimSpace(v.text(w))); ok {
			*dst = f
		}
	}
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, ok := parseIntField(strings.TrimSpace(v.text(w))); ok {
			*dst = i
		}
	}
	assignInt("numRefImages", &cfg.NumRefImages)
	assignInt("calibrationDelayMS", &cfg.CalibrationDelayMS)
	assignFloat("pixelChangeThreshold", &cfg.PixelChangeThreshold)
	assignInt("noiseFloor", &cfg.NoiseFloor)
	assignInt("searchWindow", &cfg.SearchWindow)
	assignFloat("minOverlapFraction", &cfg.MinOverlapFraction)
	assignInt("claheTileGrid", &cfg.ClaheTileGrid)
	assignFloat("claheClipLimit", &cfg.ClaheClipLimit)
	assignInt("captureIntervalMS", &cfg.CaptureIntervalMS)
	if w := v.widgets["refDir"]; w != nil {
		cfg.RefDir = strings.TrimSpace(v.text(w))
	}
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
