package presenter

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/soocke/vision-tester-go/domain/vision"
	"github.com/soocke/vision-tester-go/ui/model"
)

// CalibrationSession narrows the session surface used during calibration.
type CalibrationSession interface {
	ROI() (image.Rectangle, bool)
	Calibrate(ctx context.Context, src vision.FrameSource) error
	Calibrated() bool
	Progress() (done, total int)
	References() ([]*image.Gray, error)
}

// StatusView receives short status line updates.
type StatusView interface {
	SetStatus(text string)
}

// CalibrationPresenter drives a calibration pass on a background goroutine
// and reports progress to the view on each UI tick.
type CalibrationPresenter struct {
	session CalibrationSession
	source  vision.FrameSource
	model   *model.VerdictModel
	view    StatusView
	logger  *slog.Logger

	// Persist, when set, receives the sealed reference set after a
	// successful pass (for example to write PNGs to disk).
	Persist func([]*image.Gray) error

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan error
}

func NewCalibrationPresenter(session CalibrationSession, source vision.FrameSource, m *model.VerdictModel, view StatusView, logger *slog.Logger) *CalibrationPresenter {
	return &CalibrationPresenter{
		session: session,
		source:  source,
		model:   m,
		view:    view,
		logger:  logger,
		done:    make(chan error, 1),
	}
}

// Start begins a calibration pass unless one is already running. Requires an
// active ROI.
func (p *CalibrationPresenter) Start() {
	if p == nil || p.session == nil || p.source == nil {
		return
	}
	if p.running.Load() {
		return
	}
	if _, ok := p.session.ROI(); !ok {
		if p.view != nil {
			p.view.SetStatus("Select a ROI before calibrating")
		}
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running.Store(true)
	go func() {
		err := p.session.Calibrate(ctx, p.source)
		if err == nil && p.Persist != nil {
			if refs, rerr := p.session.References(); rerr == nil {
				if perr := p.Persist(refs); perr != nil && p.logger != nil {
					p.logger.Error("calibration.persist", "error", perr)
				}
			}
		}
		p.running.Store(false)
		p.done <- err
	}()
}

// Cancel aborts an in-flight calibration pass.
func (p *CalibrationPresenter) Cancel() {
	if p == nil || p.cancel == nil {
		return
	}
	p.cancel()
}

// Running reports whether a pass is in flight.
func (p *CalibrationPresenter) Running() bool {
	if p == nil {
		return false
	}
	return p.running.Load()
}

// Tick flushes completed pass results and refreshes progress display.
func (p *CalibrationPresenter) Tick() {
	if p == nil || p.session == nil {
		return
	}
	select {
	case err := <-p.done:
		p.onFinished(err)
	default:
	}
	if p.running.Load() {
		done, total := p.session.Progress()
		if p.model != nil {
			p.model.SetCalibration(true, done, total)
		}
		if p.view != nil {
			p.view.SetStatus(fmt.Sprintf("Calibrating %d/%d", done, total))
		}
	}
}

func (p *CalibrationPresenter) onFinished(err error) {
	done, total := p.session.Progress()
	if p.model != nil {
		p.model.SetCalibration(false, done, total)
	}
	if err != nil {
		if p.logger != nil {
			p.logger.Error("calibration", "error", err)
		}
		if p.view != nil {
			p.view.SetStatus("Calibration aborted")
		}
		return
	}
	if p.view != nil {
		p.view.SetStatus(fmt.Sprintf("Calibrated (%d references)", total))
	}
	if p.logger != nil {
		p.logger.Info("calibration.complete", "references", total)
	}
}
