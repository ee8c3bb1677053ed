package boothfx

import "errors"

var (
	// ErrInvalidDimensions is returned when a frame has a zero or negative size.
	ErrInvalidDimensions = errors.New("boothfx: invalid dimensions")

	// ErrSizeMismatch is returned when two pixmaps that must match in size do not.
	ErrSizeMismatch = errors.New("boothfx: pixmap size mismatch")

	// ErrSourceNotReady is returned by a frame source that has no frame yet,
	// such as a camera still warming up.
	ErrSourceNotReady = errors.New("boothfx: source not ready")
)
