package vision

import "errors"

// Expected, recoverable pipeline conditions. Callers match with errors.Is;
// none of these should ever surface as a panic or terminate the process.
var (
	// ErrInvalidROI reports an ROI with non-positive dimensions or one that
	// exceeds the source frame bounds.
	ErrInvalidROI = errors.New("invalid ROI")

	// ErrAlignmentFailed reports that no offset in the search window left a
	// viable overlap between live and reference images.
	ErrAlignmentFailed = errors.New("alignment failed")

	// ErrNotCalibrated reports a read of the reference store before it was
	// sealed by a completed calibration.
	ErrNotCalibrated = errors.New("not calibrated")

	// ErrCalibrationAborted reports a calibration run that stopped before
	// capturing the full reference set. The store is left empty.
	ErrCalibrationAborted = errors.New("calibration aborted")
)
