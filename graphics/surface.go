package graphics

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/plus3/spree/gpu"
)

// ErrInit wraps every failure of NewSurfaceManager. It is fatal.
var ErrInit = errors.New("graphics: initialization failed")

// DepthFormat is the format of the depth attachment.
const DepthFormat = gpu.FormatDepth32Float

// SurfaceManager owns the device, the surface and the depth attachment. The
// depth texture always has the surface's size; Resize replaces it rather than
// mutating it.
type SurfaceManager struct {
	cfg     Config
	device  gpu.Device
	surface gpu.Surface
	surfCfg gpu.SurfaceConfiguration

	depthTexture gpu.Texture
	depthView    gpu.TextureView
}

// NewSurfaceManager opens a device for target and configures the surface at
// the given size.
func NewSurfaceManager(backend gpu.Backend, target gpu.SurfaceTarget, width, height uint32, cfg Config) (*SurfaceManager, error) {
	opts := cfg.Open
	if opts.Label == "" {
		opts.Label = cfg.Label
	}
	device, surface, err := backend.Open(target, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}

	info := device.Info()
	log.Printf("graphics: adapter %q (%s, %s), %d features", info.Name, info.Backend, info.Type, len(info.Features))

	caps := surface.Capabilities()
	if len(caps.Formats) == 0 {
		surface.Release()
		device.Release()
		return nil, fmt.Errorf("%w: surface reports no formats", ErrInit)
	}

	m := &SurfaceManager{
		cfg:     cfg,
		device:  device,
		surface: surface,
	}
	w, h := m.clamp(width, height)
	m.surfCfg = gpu.SurfaceConfiguration{
		Usage:                      gpu.UsageRenderAttachment,
		Format:                     SelectFormat(caps.Formats),
		Width:                      w,
		Height:                     h,
		PresentMode:                selectPresentMode(caps.PresentModes, cfg.PresentMode),
		AlphaMode:                  selectAlphaMode(caps.AlphaModes),
		DesiredMaximumFrameLatency: cfg.DesiredMaximumFrameLatency,
	}

	if err := m.configure(); err != nil {
		m.Close()
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	log.Printf("graphics: surface %dx%d %s present=%s", w, h, m.surfCfg.Format, m.surfCfg.PresentMode)
	return m, nil
}

// SelectFormat returns the first format that is not sRGB, or the first format.
func SelectFormat(formats []gpu.TextureFormat) gpu.TextureFormat {
	for _, f := range formats {
		if !f.IsSRGB() {
			return f
		}
	}
	if len(formats) == 0 {
		return gpu.FormatUndefined
	}
	return formats[0]
}

func selectPresentMode(supported []gpu.PresentMode, preferred gpu.PresentMode) gpu.PresentMode {
	if len(supported) == 0 || slices.Contains(supported, preferred) {
		return preferred
	}
	return supported[0]
}

func selectAlphaMode(supported []gpu.AlphaMode) gpu.AlphaMode {
	if len(supported) == 0 {
		return gpu.AlphaModeAuto
	}
	return supported[0]
}

func (m *SurfaceManager) clamp(width, height uint32) (uint32, uint32) {
	limit := m.cfg.MaxTextureDimension
	if limit == 0 {
		limit = DefaultConfig().MaxTextureDimension
	}
	return min(max(width, 1), limit), min(max(height, 1), limit)
}

// configure applies the surface configuration and replaces the depth attachment.
func (m *SurfaceManager) configure() error {
	if err := m.surface.Configure(m.device, &m.surfCfg); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}

	depth, err := m.device.CreateTexture(&gpu.TextureDescriptor{
		Label:         "depth",
		Size:          gpu.Extent{Width: m.surfCfg.Width, Height: m.surfCfg.Height},
		Format:        DepthFormat,
		Usage:         gpu.UsageRenderAttachment | gpu.UsageTextureBinding,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	view, err := depth.CreateView(&gpu.TextureViewDescriptor{Label: "depth", Format: DepthFormat})
	if err != nil {
		depth.Release()
		return fmt.Errorf("create depth view: %w", err)
	}

	m.releaseDepth()
	m.depthTexture = depth
	m.depthView = view
	return nil
}

func (m *SurfaceManager) releaseDepth() {
	if m.depthView != nil {
		m.depthView.Release()
		m.depthView = nil
	}
	if m.depthTexture != nil {
		m.depthTexture.Release()
		m.depthTexture = nil
	}
}

// Resize reconfigures the surface for a new drawable size. Each dimension is
// clamped to [1, MaxTextureDimension]. Resizing to the current size is a no-op.
func (m *SurfaceManager) Resize(width, height uint32) error {
	w, h := m.clamp(width, height)
	if w == m.surfCfg.Width && h == m.surfCfg.Height {
		return nil
	}
	prev := m.surfCfg
	m.surfCfg.Width = w
	m.surfCfg.Height = h
	if err := m.configure(); err != nil {
		m.surfCfg = prev
		return fmt.Errorf("graphics: resize to %dx%d: %w", w, h, err)
	}
	log.Printf("graphics: resized to %dx%d", w, h)
	return nil
}

// Reconfigure re-applies the current configuration after the surface went stale.
func (m *SurfaceManager) Reconfigure() error {
	if err := m.configure(); err != nil {
		return fmt.Errorf("graphics: reconfigure: %w", err)
	}
	log.Printf("graphics: surface reconfigured at %dx%d", m.surfCfg.Width, m.surfCfg.Height)
	return nil
}

// Close releases the depth attachment, the surface and the device.
func (m *SurfaceManager) Close() {
	m.releaseDepth()
	if m.surface != nil {
		m.surface.Release()
		m.surface = nil
	}
	if m.device != nil {
		m.device.Release()
		m.device = nil
	}
}

func (m *SurfaceManager) Device() gpu.Device { return m.device }

func (m *SurfaceManager) Surface() gpu.Surface { return m.surface }

// SurfaceConfig returns the active surface configuration.
func (m *SurfaceManager) SurfaceConfig() gpu.SurfaceConfiguration { return m.surfCfg }

func (m *SurfaceManager) Format() gpu.TextureFormat { return m.surfCfg.Format }

func (m *SurfaceManager) Size() (uint32, uint32) { return m.surfCfg.Width, m.surfCfg.Height }

func (m *SurfaceManager) DepthTexture() gpu.Texture { return m.depthTexture }

func (m *SurfaceManager) DepthView() gpu.TextureView { return m.depthView }

func (m *SurfaceManager) Config() Config { return m.cfg }
