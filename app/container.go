package app

import (
	"image"
	"log/slog"
	"time"

	grab "github.com/soocke/vision-tester-go/capture"
	"github.com/soocke/vision-tester-go/config"
	"github.com/soocke/vision-tester-go/domain/capture"
	"github.com/soocke/vision-tester-go/domain/vision"
	"github.com/soocke/vision-tester-go/storage"
	"github.com/soocke/vision-tester-go/ui/model"
	"github.com/soocke/vision-tester-go/ui/presenter"
	"github.com/soocke/vision-tester-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config  *config.Config
	Logger  *slog.Logger
	CfgPath string

	// Models
	Capture *model.CaptureModel
	Session *model.SessionModel
	ROI     *model.ROIModel
	Verdict *model.VerdictModel

	// Services and domain state
	CaptureSvc capture.CaptureService
	Camera     *grab.Camera // non-nil when a video device is in use
	Inspection *vision.Session

	// View
	RootView *view.RootView
	UI       view.UI

	// Presenters
	CapturePresenter     *presenter.CapturePresenter
	CalibrationPresenter *presenter.CalibrationPresenter
	TestPresenter        *presenter.TestPresenter
	SessionPresenter     *presenter.SessionPresenter
	Loop                 *presenter.Loop
}

// BuildContainer constructs all components. The capture grabber comes from
// the config: a camera device when configured, the screen otherwise. Frames
// are always captured full size; the ROI crop happens in the inspection
// session so references stay valid when capture restarts.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger, CfgPath: cfgPath}
	c.Capture = &model.CaptureModel{}
	c.Session = model.NewSessionModel()
	c.ROI = model.NewROIModel()
	c.Verdict = model.NewVerdictModel()
	c.Inspection = vision.NewSession(cfg, logger)

	grabber := capture.Grabber(grab.ScreenGrabber)
	if cfg.CameraDevice >= 0 {
		cam, err := grab.OpenCamera(cfg.CameraDevice)
		if err != nil {
			logger.Error("camera open failed, falling back to screen capture",
				"device", cfg.CameraDevice, "error", err)
		} else {
			c.Camera = cam
			grabber = cam.Grab
		}
	}
	interval := time.Duration(cfg.CaptureIntervalMS) * time.Millisecond
	c.CaptureSvc = capture.NewCaptureService(logger, grabber, interval, func() *image.Rectangle { return nil })

	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	c.CapturePresenter = presenter.NewCapturePresenter(c.Capture, c.CaptureSvc, c.RootView)
	c.CalibrationPresenter = presenter.NewCalibrationPresenter(
		c.Inspection, presenter.ServiceFrames(c.CaptureSvc), c.Verdict, c.RootView, logger)
	if cfg.RefDir != "" {
		refDir := cfg.RefDir
		c.CalibrationPresenter.Persist = func(refs []*image.Gray) error {
			return storage.SaveReferences(refDir, refs)
		}
	}
	c.TestPresenter = presenter.NewTestPresenter(
		c.Capture.Testing, c.CaptureSvc, c.Inspection, c.RootView, c.Verdict, c.Session, cfg, logger)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Capture, c.RootView)
	return c
}
