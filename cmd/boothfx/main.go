// Command boothfx runs the photo booth preview in a terminal.
//
// Without a configured source image it shows a generated test card with
// a demo mask and pose, so every effect can be tried without a camera.
// With -snapshot it renders headless and writes the last frame as PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/avatar"
	"github.com/gogpu/boothfx/internal/capture"
	"github.com/gogpu/boothfx/internal/config"
	"github.com/gogpu/boothfx/internal/preview"
	"github.com/gogpu/boothfx/internal/segment"
	"github.com/gogpu/boothfx/internal/theme"
	"github.com/gogpu/boothfx/pipeline"

	_ "image/jpeg"
	_ "image/png"
)

const (
	defaultWidth  = 640
	defaultHeight = 480
)

func main() {
	var (
		snapshot = flag.String("snapshot", "", "render headless and save the last frame to this PNG file")
		frames   = flag.Int("frames", 30, "frames to render with -snapshot")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf, err := config.Load(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(conf)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	b, err := newBooth(ctx, conf)
	if err != nil {
		slog.Error("failed to set up booth", "error", err)
		os.Exit(1)
	}
	defer b.close()

	if *snapshot != "" {
		err = b.renderSnapshot(*snapshot, *frames)
	} else {
		err = b.runPreview(ctx, conf.FPS)
	}
	if err != nil {
		slog.Error("booth stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogging(conf *config.Config) (func(), error) {
	f, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec // configured path
	if err != nil {
		return nil, err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		_ = f.Close()
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	boothfx.SetLogger(logger)
	return func() { _ = f.Close() }, nil
}

// booth wires the pipeline to its collaborators.
type booth struct {
	selector *pipeline.Selector
	source   pipeline.FrameSource
	themes   *theme.Manager
	capturer *capture.Capturer
	shutter  *capture.BeepShutter

	ctx       context.Context
	surface   *preview.Surface
	scheduler *pipeline.Scheduler
}

func newBooth(ctx context.Context, conf *config.Config) (*booth, error) {
	b := &booth{ctx: ctx}

	img, demo, err := loadSource(conf)
	if err != nil {
		return nil, err
	}
	b.source = pipeline.NewImageSource(img)

	masks := &segment.MaskStore{}
	poses := &avatar.PoseStore{}
	if demo {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		m, err := demoMask(w, h)
		if err != nil {
			return nil, err
		}
		masks.Publish(m)
		poses.Publish(demoPose(w, h))
	}

	b.themes, err = theme.NewManager(os.DirFS(conf.AssetsDir), 0)
	if err != nil {
		return nil, err
	}
	if err := b.themes.Switch(conf.Theme); err != nil {
		return nil, err
	}

	b.selector = pipeline.NewSelector(
		pipeline.WithMasks(masks),
		pipeline.WithPoses(poses),
		pipeline.WithBackgrounds(b.themes),
		pipeline.WithWorkers(conf.Workers),
	)
	effect, err := pipeline.ParseEffect(conf.Effect)
	if err != nil {
		return nil, err
	}
	if err := b.selector.Select(effect); err != nil {
		return nil, err
	}

	opts := capture.Options{Dir: conf.CaptureDir, Quality: conf.JPEGQuality}
	if conf.Upload.Enabled() {
		up, err := capture.NewS3Uploader(ctx, capture.S3Config{
			Bucket:    conf.Upload.Bucket,
			Endpoint:  conf.Upload.Endpoint,
			Region:    conf.Upload.Region,
			AccessKey: conf.Upload.AccessKey,
			SecretKey: conf.Upload.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		opts.Uploader = up
	}
	if conf.Sound {
		shutter, err := capture.NewBeepShutter()
		if err != nil {
			slog.Warn("shutter sound disabled", "error", err)
		}
		b.shutter = shutter
		opts.Shutter = shutter
	}
	b.capturer = capture.NewCapturer(opts)
	return b, nil
}

// loadSource decodes the configured still image, or draws the test card.
func loadSource(conf *config.Config) (image.Image, bool, error) {
	if conf.Source == "" {
		w, h := conf.Width, conf.Height
		if w == 0 || h == 0 {
			w, h = defaultWidth, defaultHeight
		}
		return testCard(w, h), true, nil
	}
	f, err := os.Open(conf.Source)
	if err != nil {
		return nil, false, fmt.Errorf("open source: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, false, fmt.Errorf("decode source %s: %w", conf.Source, err)
	}
	return img, false, nil
}

func (b *booth) close() {
	b.themes.Close()
	if b.shutter != nil {
		b.shutter.Close()
	}
}

// renderSnapshot renders n frames on the calling goroutine and saves the
// last one.
func (b *booth) renderSnapshot(path string, n int) error {
	// Backgrounds decode asynchronously; the snapshot should show one.
	b.themes.Wait()

	var last *boothfx.Pixmap
	for i := 0; i < max(n, 1); i++ {
		frame, err := b.selector.RenderFrame(b.source)
		if err != nil {
			return err
		}
		last = frame
	}
	if err := last.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	slog.Info("snapshot saved", "path", path, "effect", b.selector.Requested())
	return nil
}

// runPreview shows the booth in the terminal until the guest quits or
// ctx is cancelled.
func (b *booth) runPreview(ctx context.Context, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	b.surface = preview.NewSurface(screen)
	b.scheduler = pipeline.NewScheduler(b.selector, b.source,
		pipeline.MultiSurface{b.surface, b.capturer}, fps)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b.refreshStatus()
	b.scheduler.Start(ctx)
	defer b.scheduler.Stop()
	go b.statusLoop(ctx)

	return b.surface.Run(ctx, b)
}

func (b *booth) statusLoop(ctx context.Context) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			b.refreshStatus()
		}
	}
}

func (b *booth) refreshStatus() {
	th, _ := b.themes.Current()
	var stats pipeline.Stats
	if b.scheduler != nil {
		stats = b.scheduler.Stats()
	}
	b.surface.SetStatus(preview.StatusLine(b.selector.Requested(), th.Name, stats), th.Accent)
}

// SelectEffect implements preview.Handler.
func (b *booth) SelectEffect(e pipeline.Effect) {
	if err := b.selector.Select(e); err != nil {
		slog.Warn("effect not selected", "error", err)
		return
	}
	b.refreshStatus()
}

// NextTheme implements preview.Handler.
func (b *booth) NextTheme() {
	names := theme.Names()
	cur, _ := b.themes.Current()
	next := names[(slices.Index(names, cur.Name)+1)%len(names)]
	if err := b.themes.Switch(next); err != nil {
		slog.Warn("theme not switched", "error", err)
		return
	}
	b.refreshStatus()
}

// Capture implements preview.Handler. The upload runs in the background
// so the preview keeps updating.
func (b *booth) Capture() {
	go func() {
		ctx, cancel := context.WithTimeout(b.ctx, 30*time.Second)
		defer cancel()
		res, err := b.capturer.Capture(ctx)
		th, _ := b.themes.Current()
		switch {
		case err != nil:
			slog.Warn("capture failed", "error", err)
			b.surface.SetStatus(" capture failed: "+err.Error(), boothfx.Hex("#ff3333"))
		case res.URL != "":
			b.surface.SetStatus(" saved "+res.URL, th.Accent)
		default:
			b.surface.SetStatus(" saved "+res.Path, th.Accent)
		}
	}()
}
