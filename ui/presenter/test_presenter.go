package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/vision-tester-go/config"
	"github.com/soocke/vision-tester-go/domain/capture"
	"github.com/soocke/vision-tester-go/domain/vision"
	"github.com/soocke/vision-tester-go/ui/images"
	"github.com/soocke/vision-tester-go/ui/model"
)

// TesterSession scores a frame against the calibrated baseline.
type TesterSession interface {
	Test(frame image.Image) vision.Verdict
}

// TestView describes the UI surface updated by the presenter.
type TestView interface {
	UpdateCapture(img image.Image)
	UpdateDiff(img image.Image)
	SetVerdict(text string)
}

type testTask struct {
	snapshot capture.FrameSnapshot
}

type testResult struct {
	sequence uint64
	err      error
	verdict  vision.Verdict
	duration time.Duration
}

// TestPresenter feeds captured frames through the session on a worker
// goroutine and publishes verdicts back on the UI tick. Frames are dropped
// rather than queued: only the freshest snapshot is ever in flight.
type TestPresenter struct {
	Enabled func() bool
	Source  FrameSource
	Session TesterSession
	View    TestView
	Model   *model.VerdictModel
	Stats   *model.SessionModel
	Config  *config.Config
	logger  *slog.Logger

	workerOnce sync.Once
	workCh     chan testTask
	resultCh   chan testResult

	lastSeq      uint64
	lastDispatch time.Time
	testDelay    time.Duration
}

// NewTestPresenter constructs a test presenter.
func NewTestPresenter(enabled func() bool, source FrameSource, session TesterSession, view TestView, vm *model.VerdictModel, stats *model.SessionModel, cfg *config.Config, logger *slog.Logger) *TestPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	delay := time.Duration(cfg.CaptureIntervalMS) * time.Millisecond
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return &TestPresenter{
		Enabled:   enabled,
		Source:    source,
		Session:   session,
		View:      view,
		Model:     vm,
		Stats:     stats,
		Config:    cfg,
		logger:    logger,
		workCh:    make(chan testTask, 1),
		resultCh:  make(chan testResult, 1),
		testDelay: delay,
	}
}

// ProcessFrame pulls the latest frame, schedules test work, and handles
// worker results.
func (p *TestPresenter) ProcessFrame() {
	if p == nil || p.Enabled == nil || p.Source == nil || p.Session == nil || p.View == nil {
		return
	}

	p.ensureWorker()

	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			goto drained
		}
	}

drained:
	if !p.Source.Running() {
		return
	}

	snapshot := p.Source.LatestFrame()
	if snapshot.Image == nil {
		return
	}

	p.View.UpdateCapture(snapshot.Image)

	if !p.Enabled() {
		return
	}
	p.maybeDispatch(snapshot)
}

func (p *TestPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *TestPresenter) runWorker() {
	for task := range p.workCh {
		res := p.executeTask(task)
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *TestPresenter) maybeDispatch(snapshot capture.FrameSnapshot) {
	if snapshot.Sequence == 0 || snapshot.Sequence == p.lastSeq {
		return
	}
	if !p.lastDispatch.IsZero() && time.Since(p.lastDispatch) < p.testDelay {
		return
	}
	p.lastSeq = snapshot.Sequence
	p.lastDispatch = time.Now()
	task := testTask{snapshot: snapshot}
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *TestPresenter) executeTask(task testTask) testResult {
	res := testResult{sequence: task.snapshot.Sequence}
	frame := task.snapshot.Image
	if frame == nil {
		res.err = errors.New("nil frame")
		return res
	}
	start := time.Now()
	res.verdict = p.Session.Test(frame)
	res.duration = time.Since(start)
	return res
}

func (p *TestPresenter) handleResult(res testResult) {
	if res.err != nil {
		if p.logger != nil {
			p.logger.Error("test", "error", res.err)
		}
		return
	}
	v := res.verdict
	if p.Model != nil {
		p.Model.SetVerdict(v)
	}
	if p.Stats != nil && v.Status != vision.StatusUncalibrated {
		p.Stats.RecordVerdict(v.Status == vision.StatusPass)
	}
	p.View.SetVerdict(FormatVerdict(v))
	if v.Diff != nil {
		floor := uint8(p.Config.NoiseFloor)
		p.View.UpdateDiff(images.Heatmap(v.Diff, floor))
	}
	if p.logger != nil {
		p.logger.Debug("test.verdict",
			"status", v.Status.String(),
			"changed", v.ChangedFraction,
			"ref", v.RefIndex,
			"duration", res.duration,
		)
	}
}

// FormatVerdict renders a verdict as a short status line.
func FormatVerdict(v vision.Verdict) string {
	switch v.Status {
	case vision.StatusPass:
		return fmt.Sprintf("PASS (%.2f%% changed, ref %d)", v.ChangedFraction*100, v.RefIndex)
	case vision.StatusFail:
		if v.Reason != "" {
			return fmt.Sprintf("FAIL (%s)", v.Reason)
		}
		return fmt.Sprintf("FAIL (%.2f%% changed, ref %d)", v.ChangedFraction*100, v.RefIndex)
	default:
		if v.Reason != "" {
			return fmt.Sprintf("UNCALIBRATED (%s)", v.Reason)
		}
		return "UNCALIBRATED"
	}
}
