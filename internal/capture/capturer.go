package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/gogpu/boothfx"
)

// ErrNoFrame is returned by Capture before any frame was presented.
var ErrNoFrame = errors.New("capture: no frame presented yet")

// Result describes a finished capture.
type Result struct {
	ID uuid.UUID
	// Key is the object storage key.
	Key string
	// Path is the local copy, empty when no capture directory is set.
	Path string
	// URL is where the upload can be fetched, empty without an uploader.
	URL  string
	Size int
}

// Options configures a Capturer. Zero values disable the optional steps.
type Options struct {
	// Dir receives a local copy of every capture.
	Dir      string
	Quality  int
	Uploader Uploader
	Shutter  Shutter
}

// Capturer keeps the last presented frame and turns it into a capture on
// request. Present and Capture are safe to call from different
// goroutines.
type Capturer struct {
	opts Options
	now  func() time.Time

	mu   sync.Mutex
	last *boothfx.Pixmap
}

// NewCapturer creates a capturer. A zero quality uses DefaultQuality.
func NewCapturer(opts Options) *Capturer {
	if opts.Quality == 0 {
		opts.Quality = DefaultQuality
	}
	return &Capturer{opts: opts, now: time.Now, last: boothfx.NewPixmap(0, 0)}
}

// Present records frame as the one a capture would take. It implements
// the pipeline's Surface.
func (c *Capturer) Present(frame *boothfx.Pixmap) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last.Resize(frame.Width(), frame.Height())
	return c.last.CopyFrom(frame)
}

// Capture plays the shutter, encodes the last presented frame, saves the
// local copy and uploads it. A failed upload still returns the result
// with the local path alongside the error.
func (c *Capturer) Capture(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.last.Width() == 0 || c.last.Height() == 0 {
		c.mu.Unlock()
		return Result{}, ErrNoFrame
	}
	frame := c.last.Clone()
	c.mu.Unlock()

	if c.opts.Shutter != nil {
		c.opts.Shutter.Play()
	}

	data, err := EncodeJPEG(frame, c.opts.Quality)
	if err != nil {
		return Result{}, err
	}

	id := uuid.New()
	at := c.now()
	res := Result{
		ID:   id,
		Key:  objectKey(at, id),
		Size: len(data),
	}

	if c.opts.Dir != "" {
		if res.Path, err = save(c.opts.Dir, at, id, data); err != nil {
			return res, err
		}
	}

	if c.opts.Uploader != nil {
		url, err := c.opts.Uploader.Upload(ctx, res.Key, ContentType, data)
		if err != nil {
			return res, fmt.Errorf("upload capture %s: %w", id, err)
		}
		res.URL = url
	}

	boothfx.Logger().Info("capture: saved",
		"id", id, "size", humanize.Bytes(uint64(res.Size)),
		"path", res.Path, "url", res.URL)
	return res, nil
}

// objectKey groups captures by day: captures/2006-01-02/<id>.jpg.
func objectKey(t time.Time, id uuid.UUID) string {
	return fmt.Sprintf("captures/%s/%s.jpg", t.UTC().Format(time.DateOnly), id)
}

// save writes the local copy to dir/2006-01-02/<id>.jpg, the same day
// layout as the object key.
func save(dir string, t time.Time, id uuid.UUID, data []byte) (string, error) {
	day := filepath.Join(dir, t.UTC().Format(time.DateOnly))
	if err := os.MkdirAll(day, 0o755); err != nil {
		return "", fmt.Errorf("create capture dir: %w", err)
	}
	path := filepath.Join(day, id.String()+".jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // captures are meant to be shared
		return "", fmt.Errorf("save capture: %w", err)
	}
	return path, nil
}
