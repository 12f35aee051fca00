package view

import (
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/vision-tester-go/config"
	"github.com/soocke/vision-tester-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	CapturePrev CapturePreview

	// Widgets
	StatusLabel  *LabelWidget
	VerdictLabel *LabelWidget
	testBtn      *ButtonWidget
	captureRow   int
}

// Handlers bundles the callbacks invoked on user actions.
type Handlers struct {
	OnToggleCapture func()
	OnSelectROI     func()
	OnCalibrate     func()
	OnToggleTest    func()
	OnReset         func()
	OnExit          func()
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	SetStatus(text string)
	SetVerdict(text string)
	SetConfigEditable(enabled bool)
	UpdateCapture(img image.Image)
	UpdateDiff(img image.Image)
	SetSession(session, total time.Duration)
	SetVerdictCounts(passes, fails uint64)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout and wires the handlers.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	theme.InitStyles()

	// Row 0: session stats, status label, verdict label, button column.
	rv.Session = NewSessionStats(0, 0)
	rv.StatusLabel = Label(Txt("Idle"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StatusLabel, Row(0), Column(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.VerdictLabel = Label(Txt("No verdict"), Borderwidth(1), Relief("ridge"))
	Grid(rv.VerdictLabel, Row(0), Column(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(5), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	addBtn := func(row int, text string, cmd func()) *ButtonWidget {
		b := Button(Txt(text), Command(cmd))
		Grid(b, In(btnFrame), Row(row), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		return b
	}
	addBtn(0, "Toggle Capture", h.OnToggleCapture)
	addBtn(1, "Select ROI", h.OnSelectROI)
	addBtn(2, "Calibrate", h.OnCalibrate)
	rv.testBtn = addBtn(3, "Start Test", h.OnToggleTest)
	addBtn(4, "Reset", h.OnReset)
	addBtn(5, "Exit", h.OnExit)

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	endRow := rv.ConfigPanel.Build(1)
	rv.captureRow = endRow

	// Capture preview placement
	rv.CapturePrev = NewCapturePreview(rv.captureRow)
}

// SetStatus updates the status label text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetVerdict updates the verdict label with the outcome text and colors it
// by outcome.
func (rv *RootView) SetVerdict(text string) {
	if rv == nil || rv.VerdictLabel == nil {
		return
	}
	style := theme.StyleStatusLabel
	switch {
	case strings.HasPrefix(text, "PASS"):
		style = theme.StylePassLabel
	case strings.HasPrefix(text, "FAIL"):
		style = theme.StyleFailLabel
	}
	rv.VerdictLabel.Configure(Txt(text), Style(style))
}

// SetTestButtonLabel swaps the test toggle caption (Start Test / Stop Test).
func (rv *RootView) SetTestButtonLabel(text string) {
	if rv != nil && rv.testBtn != nil {
		rv.testBtn.Configure(Txt(text))
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// UpdateCapture proxies to the underlying capture preview view.
func (rv *RootView) UpdateCapture(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateCapture(img)
	}
}

// UpdateDiff proxies to the underlying capture preview view.
func (rv *RootView) UpdateDiff(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateDiff(img)
	}
}

// SetSession updates session duration displays.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(session, total)
	}
}

// SetVerdictCounts updates the pass/fail tally display.
func (rv *RootView) SetVerdictCounts(passes, fails uint64) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetVerdictCounts(passes, fails)
	}
}

// --- CapturePresenter view contract methods ---
// PreviewReset clears the capture preview canvas.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.Reset()
	}
}

// ConfigEditable redirects to SetConfigEditable to satisfy the CaptureView interface.
func (rv *RootView) ConfigEditable(b bool) { rv.SetConfigEditable(b) }
