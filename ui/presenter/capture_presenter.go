package presenter

// CaptureModel provides capture enabled state access.
type CaptureModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// LifecycleContract narrows what the presenter needs from the capture layer.
type LifecycleContract interface {
	Start()
	Stop()
}

// CaptureView updates UI elements affected by capture toggling.
type CaptureView interface {
	PreviewReset()
	ConfigEditable(bool)
	SetStatus(text string)
}

// CapturePresenter owns presentation logic for toggling capture state.
type CapturePresenter struct {
	model   CaptureModel
	service LifecycleContract
	view    CaptureView
}

func NewCapturePresenter(model CaptureModel, service LifecycleContract, view CaptureView) *CapturePresenter {
	return &CapturePresenter{model: model, service: service, view: view}
}

// Enable starts the capture service and locks the config panel. Idempotent.
func (c *CapturePresenter) Enable() {
	if c == nil || c.model == nil || c.service == nil || c.view == nil {
		return
	}
	if c.model.Enabled() { // already enabled
		return
	}
	c.service.Start()
	c.model.SetEnabled(true)
	c.view.ConfigEditable(false)
	c.view.SetStatus("Capturing")
}

// Disable stops the capture service, resets the preview and unlocks the
// config panel. Idempotent.
func (c *CapturePresenter) Disable() {
	if c == nil || c.model == nil || c.service == nil || c.view == nil {
		return
	}
	if !c.model.Enabled() { // already disabled
		return
	}
	c.service.Stop()
	c.model.SetEnabled(false)
	c.view.PreviewReset()
	c.view.ConfigEditable(true)
	c.view.SetStatus("Idle")
}

// Toggle flips enabled state delegating to Enable/Disable.
func (c *CapturePresenter) Toggle() {
	if c == nil || c.model == nil || c.service == nil || c.view == nil {
		return
	}
	if c.model.Enabled() {
		c.Disable()
		return
	}
	c.Enable()
}
