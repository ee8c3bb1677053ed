package pipeline

import (
	"errors"
	"image"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/avatar"
	"github.com/gogpu/boothfx/internal/segment"
)

// FrameSource supplies camera frames.
type FrameSource interface {
	// Size returns the natural size of the next frame.
	Size() (width, height int)

	// Draw copies the current frame into dst, which already has the
	// size Size reported. It returns boothfx.ErrSourceNotReady while no
	// frame is available.
	Draw(dst *boothfx.Pixmap) error
}

// MaskProvider returns the latest person segmentation mask.
type MaskProvider interface {
	LatestMask() (*segment.Mask, bool)
}

// PoseProvider returns the latest accepted pose.
type PoseProvider interface {
	LatestPose() (*avatar.Pose, bool)
}

// BackgroundProvider returns the replacement background scaled to the
// frame size, or false while it is still loading.
type BackgroundProvider interface {
	Background(width, height int) (*boothfx.Pixmap, bool)
}

// Surface displays processed frames. The pixmap is only valid for the
// duration of the call.
type Surface interface {
	Present(frame *boothfx.Pixmap) error
}

// MultiSurface presents every frame to each surface in order. All
// surfaces see the frame even when an earlier one fails.
type MultiSurface []Surface

// Present implements Surface.
func (m MultiSurface) Present(frame *boothfx.Pixmap) error {
	var errs []error
	for _, s := range m {
		if err := s.Present(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ImageSource is a FrameSource that always returns the same still image.
type ImageSource struct {
	img image.Image
}

// NewImageSource returns a source serving img. A nil img is never ready.
func NewImageSource(img image.Image) *ImageSource {
	return &ImageSource{img: img}
}

// Size implements FrameSource.
func (s *ImageSource) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Draw implements FrameSource.
func (s *ImageSource) Draw(dst *boothfx.Pixmap) error {
	if s.img == nil {
		return boothfx.ErrSourceNotReady
	}
	dst.DrawImage(s.img)
	return nil
}
