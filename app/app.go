package app

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/vision-tester-go/config"
	"github.com/soocke/vision-tester-go/debug"
	"github.com/soocke/vision-tester-go/ui/presenter"
	"github.com/soocke/vision-tester-go/ui/view"
)

const tick = 100 * time.Millisecond

type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	container *AppContainer
	overlay   view.SelectionOverlay
	afterID   string
}

// NewApp builds the container and prepares the top-level window.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{cfg: cfg, logger: logger}
	a.container = BuildContainer(cfg, logger, cfgPath)

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the view, wires handlers and enters the Tk event loop.
func (a *app) Start() {
	c := a.container

	a.overlay = view.NewSelectionOverlay(a.cfg, c.CfgPath, a.logger, a.onROIChanged)
	c.RootView.Build(view.Handlers{
		OnToggleCapture: c.CapturePresenter.Toggle,
		OnSelectROI:     a.overlay.OpenOrFocus,
		OnCalibrate:     c.CalibrationPresenter.Start,
		OnToggleTest:    a.toggleTesting,
		OnReset:         a.reset,
		OnExit:          a.exitHandler,
	})

	// Restore a persisted ROI from the previous run.
	if rect := a.overlay.ActiveRect(); rect != nil {
		a.onROIChanged(*rect)
	}

	c.Loop = presenter.NewLoop(c.SessionPresenter, c.CalibrationPresenter, c.TestPresenter, a.scheduleUpdate)

	if a.cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, a.logger)
		debug.StartMemLogger(5*time.Second, a.logger)
	}

	a.scheduleUpdate()
	App.Wait()
}

// onROIChanged propagates a confirmed or cleared selection rectangle into the
// inspection session. An empty rectangle clears the selection.
func (a *app) onROIChanged(r image.Rectangle) {
	c := a.container
	if r.Empty() {
		c.ROI.Clear()
		c.Inspection.Reset()
		c.Verdict.Reset()
		c.RootView.SetStatus("ROI cleared")
		return
	}
	if err := c.Inspection.SetROI(r); err != nil {
		a.logger.Error("roi rejected", "rect", r.String(), "error", err)
		c.RootView.SetStatus("Invalid ROI")
		return
	}
	c.ROI.SetROI(r)
	c.RootView.SetStatus(fmt.Sprintf("ROI %dx%d at (%d,%d)", r.Dx(), r.Dy(), r.Min.X, r.Min.Y))
}

func (a *app) toggleTesting() {
	c := a.container
	if c.Capture.Testing() {
		c.Capture.SetTesting(false)
		c.RootView.SetTestButtonLabel("Start Test")
		c.RootView.SetStatus("Testing stopped")
		return
	}
	if !c.Capture.Enabled() {
		c.RootView.SetStatus("Enable capture before testing")
		return
	}
	if !c.Inspection.Calibrated() {
		c.RootView.SetStatus("Calibrate before testing")
		return
	}
	c.Capture.SetTesting(true)
	c.RootView.SetTestButtonLabel("Stop Test")
	c.RootView.SetStatus("Testing")
}

func (a *app) reset() {
	c := a.container
	c.Capture.SetTesting(false)
	c.Inspection.Reset()
	c.ROI.Clear()
	c.Verdict.Reset()
	c.RootView.SetTestButtonLabel("Start Test")
	c.RootView.SetVerdict("No verdict")
	c.RootView.PreviewReset()
	c.RootView.SetStatus("Reset")
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.container != nil {
		if a.container.CaptureSvc != nil {
			a.container.CaptureSvc.Stop()
		}
		if a.container.Camera != nil {
			_ = a.container.Camera.Close()
		}
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() {
		if a.container.Loop != nil {
			a.container.Loop.Tick()
		}
	})
}
