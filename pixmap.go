package boothfx

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap represents a rectangular pixel buffer.
//
// Samples are stored row-major, 4 bytes per pixel in R, G, B, A order.
// Colors are not premultiplied, matching the layout of a canvas ImageData
// buffer. A sample with alpha 0 marks a cut-out region: color stages never
// modify it.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new fully transparent pixmap with the given dimensions.
// Negative dimensions are treated as zero.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Offset returns the index of the first byte of the sample at (x, y).
// The caller is responsible for bounds checking.
func (p *Pixmap) Offset(x, y int) int {
	return (y*p.width + x) * 4
}

// InBounds reports whether (x, y) addresses a sample of the pixmap.
func (p *Pixmap) InBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

// SameSize reports whether p and o have identical dimensions.
func (p *Pixmap) SameSize(o *Pixmap) bool {
	return o != nil && p.width == o.width && p.height == o.height
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if !p.InBounds(x, y) {
		return
	}
	i := p.Offset(x, y)
	p.data[i+0] = uint8(clamp255(c.R*255 + 0.5))
	p.data[i+1] = uint8(clamp255(c.G*255 + 0.5))
	p.data[i+2] = uint8(clamp255(c.B*255 + 0.5))
	p.data[i+3] = uint8(clamp255(c.A*255 + 0.5))
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if !p.InBounds(x, y) {
		return Transparent
	}
	i := p.Offset(x, y)
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// SetRGBA8 stores raw 8-bit channel values at (x, y).
func (p *Pixmap) SetRGBA8(x, y int, r, g, b, a uint8) {
	if !p.InBounds(x, y) {
		return
	}
	i := p.Offset(x, y)
	p.data[i+0] = r
	p.data[i+1] = g
	p.data[i+2] = b
	p.data[i+3] = a
}

// RGBA8 returns the raw 8-bit channel values at (x, y).
// Out-of-bounds coordinates return a transparent sample.
func (p *Pixmap) RGBA8(x, y int) (r, g, b, a uint8) {
	if !p.InBounds(x, y) {
		return 0, 0, 0, 0
	}
	i := p.Offset(x, y)
	return p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3]
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r := uint8(clamp255(c.R*255 + 0.5))
	g := uint8(clamp255(c.G*255 + 0.5))
	b := uint8(clamp255(c.B*255 + 0.5))
	a := uint8(clamp255(c.A*255 + 0.5))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := &Pixmap{
		width:  p.width,
		height: p.height,
		data:   make([]uint8, len(p.data)),
	}
	copy(c.data, p.data)
	return c
}

// CopyFrom overwrites p with the samples of src.
// Both pixmaps must have the same dimensions.
func (p *Pixmap) CopyFrom(src *Pixmap) error {
	if !p.SameSize(src) {
		if src == nil {
			return fmt.Errorf("copy from nil pixmap: %w", ErrSizeMismatch)
		}
		return fmt.Errorf("copy %dx%d into %dx%d: %w", src.width, src.height, p.width, p.height, ErrSizeMismatch)
	}
	copy(p.data, src.data)
	return nil
}

// Resize changes the dimensions of p, reallocating its storage when needed.
// The contents are undefined after a resize. It reports whether the
// dimensions changed.
func (p *Pixmap) Resize(width, height int) bool {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == p.width && height == p.height {
		return false
	}
	n := width * height * 4
	if cap(p.data) >= n {
		p.data = p.data[:n]
	} else {
		p.data = make([]uint8, n)
	}
	p.width = width
	p.height = height
	return true
}

// ToImage converts the pixmap to an image.NRGBA sharing no memory with p.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	pm.DrawImage(img)
	return pm
}

// DrawImage copies img into p starting at the origin. Samples outside
// either image are ignored.
func (p *Pixmap) DrawImage(img image.Image) {
	bounds := img.Bounds()
	w := min(bounds.Dx(), p.width)
	h := min(bounds.Dy(), p.height)

	// Fast path: non-premultiplied source has the same layout.
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			si := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			di := p.Offset(0, y)
			copy(p.data[di:di+w*4], src.Pix[si:si+w*4])
		}
		return
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := p.Offset(x, y)
			p.data[i+0] = c.R
			p.data[i+1] = c.G
			p.data[i+2] = c.B
			p.data[i+3] = c.A
		}
	}
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	r, g, b, a := p.RGBA8(x, y)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// Set implements the draw.Image interface so image/draw and font drawers
// can render directly into the pixmap.
func (p *Pixmap) Set(x, y int, c color.Color) {
	if !p.InBounds(x, y) {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := p.Offset(x, y)
	p.data[i+0] = n.R
	p.data[i+1] = n.G
	p.data[i+2] = n.B
	p.data[i+3] = n.A
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
