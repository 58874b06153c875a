// Package headless is a CPU implementation of the gpu interfaces. Textures are
// plain memory, render passes perform their clears on submit and Present
// publishes the frame as an image.RGBA.
package headless

import (
	"errors"
	"fmt"
	"sync"

	"github.com/plus3/spree/gpu"
)

// Option configures a Backend.
type Option func(*Backend)

// WithFormats sets the surface formats reported by Capabilities, in preference order.
func WithFormats(formats ...gpu.TextureFormat) Option {
	return func(b *Backend) { b.formats = formats }
}

// WithPresentModes sets the supported present modes.
func WithPresentModes(modes ...gpu.PresentMode) Option {
	return func(b *Backend) { b.presentModes = modes }
}

// WithoutAdapter makes Open fail with gpu.ErrNoAdapter.
func WithoutAdapter() Option {
	return func(b *Backend) { b.noAdapter = true }
}

// WithAdapterName sets the name reported in AdapterInfo.
func WithAdapterName(name string) Option {
	return func(b *Backend) { b.name = name }
}

// Backend opens headless devices. The surface target is ignored.
type Backend struct {
	formats      []gpu.TextureFormat
	presentModes []gpu.PresentMode
	alphaModes   []gpu.AlphaMode
	noAdapter    bool
	name         string

	mu      sync.Mutex
	device  *Device
	surface *Surface
}

func New(opts ...Option) *Backend {
	b := &Backend{
		formats:      []gpu.TextureFormat{gpu.FormatBGRA8UnormSrgb, gpu.FormatBGRA8Unorm},
		presentModes: []gpu.PresentMode{gpu.PresentModeFifo, gpu.PresentModeImmediate, gpu.PresentModeMailbox},
		alphaModes:   []gpu.AlphaMode{gpu.AlphaModeOpaque, gpu.AlphaModePreMultiplied},
		name:         "headless",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Open(target gpu.SurfaceTarget, opts gpu.OpenOptions) (gpu.Device, gpu.Surface, error) {
	if b.noAdapter || len(b.formats) == 0 {
		return nil, nil, gpu.ErrNoAdapter
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	backendName := opts.Backend
	if backendName == "" {
		backendName = "cpu"
	}
	b.device = &Device{
		info: gpu.AdapterInfo{
			Name:    b.name,
			Vendor:  "spree",
			Backend: backendName,
			Type:    "cpu",
		},
		queue: &Queue{},
	}
	b.surface = &Surface{caps: gpu.SurfaceCapabilities{
		Formats:      b.formats,
		PresentModes: b.presentModes,
		AlphaModes:   b.alphaModes,
	}}
	return b.device, b.surface, nil
}

// Device returns the most recently opened device.
func (b *Backend) Device() *Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.device
}

// Surface returns the most recently opened surface.
func (b *Backend) Surface() *Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface
}

// Device tracks live textures so tests can check for leaks.
type Device struct {
	info     gpu.AdapterInfo
	queue    *Queue
	mu       sync.Mutex
	live     int
	released bool
}

func (d *Device) Info() gpu.AdapterInfo { return d.info }

func (d *Device) Queue() gpu.Queue { return d.queue }

// LiveTextures returns the number of created textures not yet released.
func (d *Device) LiveTextures() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

// Released reports whether Release was called.
func (d *Device) Released() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}

// Submissions returns the number of command buffers executed.
func (d *Device) Submissions() int {
	return d.queue.Submitted()
}

func (d *Device) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	return d.newTexture(desc)
}

func (d *Device) newTexture(desc *gpu.TextureDescriptor) (*Texture, error) {
	if d.Released() {
		return nil, gpu.ErrReleased
	}
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return nil, fmt.Errorf("headless: texture %q has zero size %dx%d", desc.Label, desc.Size.Width, desc.Size.Height)
	}
	bpp := desc.Format.BytesPerPixel()
	if bpp == 0 || desc.Format == gpu.FormatRGBA16Float || desc.Format == gpu.FormatRGB10A2Unorm {
		return nil, fmt.Errorf("headless: unsupported texture format %s", desc.Format)
	}

	t := &Texture{
		device: d,
		label:  desc.Label,
		width:  desc.Size.Width,
		height: desc.Size.Height,
		format: desc.Format,
		usage:  desc.Usage,
	}
	n := int(desc.Size.Width) * int(desc.Size.Height)
	if desc.Format.IsDepth() {
		t.depth = make([]float32, n)
	} else {
		t.pixels = make([]byte, n*bpp)
	}

	d.mu.Lock()
	d.live++
	d.mu.Unlock()
	return t, nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	if d.Released() {
		return nil, gpu.ErrReleased
	}
	return &CommandEncoder{label: label}, nil
}

func (d *Device) Release() {
	d.mu.Lock()
	d.released = true
	d.mu.Unlock()
}

func (d *Device) textureReleased() {
	d.mu.Lock()
	d.live--
	d.mu.Unlock()
}

// Queue runs command buffers synchronously.
type Queue struct {
	mu        sync.Mutex
	submitted int
	markers   []string
}

func (q *Queue) Submit(buffers ...gpu.CommandBuffer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, buffer := range buffers {
		cb, ok := buffer.(*CommandBuffer)
		if !ok || cb.executed {
			continue
		}
		for _, op := range cb.ops {
			op()
		}
		cb.executed = true
		q.markers = append(q.markers, cb.markers...)
		q.submitted++
	}
}

// Submitted returns the number of command buffers executed.
func (q *Queue) Submitted() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.submitted
}

// Markers returns the debug markers of every executed buffer, in order.
func (q *Queue) Markers() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.markers...)
}

// CommandEncoder records clears. Passes must be ended before Finish.
type CommandEncoder struct {
	label    string
	ops      []func()
	markers  []string
	open     *RenderPass
	finished bool
}

func (e *CommandEncoder) InsertDebugMarker(label string) {
	e.markers = append(e.markers, label)
}

func (e *CommandEncoder) BeginRenderPass(desc *gpu.RenderPassDescriptor) (gpu.RenderPass, error) {
	if e.finished {
		return nil, errors.New("headless: encoder already finished")
	}
	if e.open != nil {
		return nil, errors.New("headless: previous render pass not ended")
	}
	if len(desc.ColorAttachments) == 0 && desc.DepthStencilAttachment == nil {
		return nil, errors.New("headless: render pass has no attachments")
	}

	var size gpu.Extent
	checkSize := func(v *TextureView) error {
		if v == nil || v.texture == nil {
			return errors.New("headless: nil attachment view")
		}
		if v.texture.released {
			return gpu.ErrReleased
		}
		ext := gpu.Extent{Width: v.texture.width, Height: v.texture.height}
		if size == (gpu.Extent{}) {
			size = ext
		} else if size != ext {
			return fmt.Errorf("headless: attachment size %dx%d does not match %dx%d",
				ext.Width, ext.Height, size.Width, size.Height)
		}
		return nil
	}

	var ops []func()
	for _, attachment := range desc.ColorAttachments {
		view, _ := attachment.View.(*TextureView)
		if err := checkSize(view); err != nil {
			return nil, err
		}
		if view.texture.format.IsDepth() {
			return nil, errors.New("headless: depth texture used as color attachment")
		}
		if attachment.LoadOp == gpu.LoadOpClear {
			clearColor := attachment.ClearValue
			ops = append(ops, func() { view.texture.fill(clearColor) })
		}
	}

	if ds := desc.DepthStencilAttachment; ds != nil {
		view, _ := ds.View.(*TextureView)
		if err := checkSize(view); err != nil {
			return nil, err
		}
		if !view.texture.format.IsDepth() {
			return nil, errors.New("headless: depth attachment is not a depth texture")
		}
		if ds.DepthLoadOp == gpu.LoadOpClear {
			value := ds.DepthClearValue
			ops = append(ops, func() { view.texture.fillDepth(value) })
		}
	}

	e.ops = append(e.ops, ops...)
	e.open = &RenderPass{encoder: e}
	return e.open, nil
}

func (e *CommandEncoder) Finish() (gpu.CommandBuffer, error) {
	if e.finished {
		return nil, errors.New("headless: encoder already finished")
	}
	if e.open != nil {
		return nil, errors.New("headless: render pass not ended before Finish")
	}
	e.finished = true
	return &CommandBuffer{ops: e.ops, markers: e.markers}, nil
}

func (e *CommandEncoder) Release() {}

type RenderPass struct {
	encoder *CommandEncoder
	ended   bool
}

func (p *RenderPass) End() error {
	if p.ended {
		return errors.New("headless: render pass already ended")
	}
	p.ended = true
	p.encoder.open = nil
	return nil
}

func (p *RenderPass) Release() {}

type CommandBuffer struct {
	ops      []func()
	markers  []string
	executed bool
}

func (c *CommandBuffer) Release() {}
