package headless

import (
	"image"
	"image/color"
	"math"

	"github.com/plus3/spree/gpu"
)

// Texture is a block of texels in host memory.
type Texture struct {
	device   *Device
	label    string
	width    uint32
	height   uint32
	format   gpu.TextureFormat
	usage    gpu.TextureUsage
	pixels   []byte
	depth    []float32
	released bool
}

func (t *Texture) Width() uint32             { return t.width }
func (t *Texture) Height() uint32            { return t.height }
func (t *Texture) Format() gpu.TextureFormat { return t.format }
func (t *Texture) Usage() gpu.TextureUsage   { return t.usage }

func (t *Texture) CreateView(desc *gpu.TextureViewDescriptor) (gpu.TextureView, error) {
	if t.released {
		return nil, gpu.ErrReleased
	}
	format := t.format
	if desc != nil && desc.Format != gpu.FormatUndefined {
		format = desc.Format
	}
	if format != t.format {
		return nil, &viewFormatError{texture: t.format, view: format}
	}
	return &TextureView{texture: t}, nil
}

func (t *Texture) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.device != nil {
		t.device.textureReleased()
	}
}

// Released reports whether Release was called.
func (t *Texture) Released() bool {
	return t.released
}

// Depth returns the depth value at (x, y) of a depth texture.
func (t *Texture) Depth(x, y int) float32 {
	return t.depth[y*int(t.width)+x]
}

// At returns the texel at (x, y) as RGBA.
func (t *Texture) At(x, y int) color.RGBA {
	i := (y*int(t.width) + x) * 4
	p := t.pixels[i : i+4]
	switch t.format {
	case gpu.FormatBGRA8Unorm, gpu.FormatBGRA8UnormSrgb:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	default:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
}

// Image converts a color texture to an image.RGBA.
func (t *Texture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(t.width), int(t.height)))
	for y := range int(t.height) {
		for x := range int(t.width) {
			img.SetRGBA(x, y, t.At(x, y))
		}
	}
	return img
}

func (t *Texture) fill(c gpu.Color) {
	encode := unorm8
	if t.format.IsSRGB() {
		encode = srgb8
	}
	r, g, b, a := encode(c.R), encode(c.G), encode(c.B), unorm8(c.A)
	texel := [4]byte{r, g, b, a}
	if t.format == gpu.FormatBGRA8Unorm || t.format == gpu.FormatBGRA8UnormSrgb {
		texel = [4]byte{b, g, r, a}
	}
	for i := 0; i < len(t.pixels); i += 4 {
		copy(t.pixels[i:i+4], texel[:])
	}
}

func (t *Texture) fillDepth(value float32) {
	for i := range t.depth {
		t.depth[i] = value
	}
}

func unorm8(v float64) byte {
	return byte(math.Round(clamp01(v) * 255))
}

func srgb8(v float64) byte {
	v = clamp01(v)
	if v <= 0.0031308 {
		v *= 12.92
	} else {
		v = 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return byte(math.Round(v * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

type TextureView struct {
	texture *Texture
}

// Texture returns the viewed texture.
func (v *TextureView) Texture() *Texture {
	return v.texture
}

func (v *TextureView) Release() {}

type viewFormatError struct {
	texture gpu.TextureFormat
	view    gpu.TextureFormat
}

func (e *viewFormatError) Error() string {
	return "headless: view format " + e.view.String() + " incompatible with texture format " + e.texture.String()
}
