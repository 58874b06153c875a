package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/plus3/spree/gpu"
)

type Surface struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	config  gpu.SurfaceConfiguration
}

func (s *Surface) Capabilities() gpu.SurfaceCapabilities {
	caps := s.surface.GetCapabilities(s.adapter)
	out := gpu.SurfaceCapabilities{}
	for _, f := range caps.Formats {
		if format, ok := fromTextureFormat(f); ok {
			out.Formats = append(out.Formats, format)
		}
	}
	for _, m := range caps.PresentModes {
		if mode, ok := fromPresentMode(m); ok {
			out.PresentModes = append(out.PresentModes, mode)
		}
	}
	for _, a := range caps.AlphaModes {
		out.AlphaModes = append(out.AlphaModes, fromAlphaMode(a))
	}
	return out
}

// Configure applies config. The frame latency hint is not exposed by the
// bindings and is ignored.
func (s *Surface) Configure(device gpu.Device, config *gpu.SurfaceConfiguration) error {
	d, ok := device.(*Device)
	if !ok {
		return fmt.Errorf("webgpu: foreign device %T", device)
	}
	s.surface.Configure(d.adapter, d.device, &wgpu.SurfaceConfiguration{
		Usage:       textureUsage(config.Usage),
		Format:      textureFormat(config.Format),
		Width:       config.Width,
		Height:      config.Height,
		PresentMode: presentMode(config.PresentMode),
		AlphaMode:   alphaMode(config.AlphaMode),
	})
	s.config = *config
	return nil
}

// CurrentTexture treats every acquire failure as an outdated surface; the
// bindings do not distinguish the status codes.
func (s *Surface) CurrentTexture() (gpu.Texture, error) {
	texture, err := s.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gpu.ErrSurfaceOutdated, err)
	}
	if texture == nil {
		return nil, gpu.ErrSurfaceOutdated
	}
	return &Texture{texture: texture, width: s.config.Width, height: s.config.Height, format: s.config.Format, surface: true}, nil
}

func (s *Surface) Present() error {
	s.surface.Present()
	return nil
}

func (s *Surface) Release() {
	s.surface.Release()
}

type Texture struct {
	texture *wgpu.Texture
	width   uint32
	height  uint32
	format  gpu.TextureFormat
	// surface textures are owned by the surface and only dropped here.
	surface bool
}

func (t *Texture) Width() uint32             { return t.width }
func (t *Texture) Height() uint32            { return t.height }
func (t *Texture) Format() gpu.TextureFormat { return t.format }

func (t *Texture) CreateView(desc *gpu.TextureViewDescriptor) (gpu.TextureView, error) {
	wdesc := &wgpu.TextureViewDescriptor{
		Dimension:       wgpu.TextureViewDimension2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspectAll,
		Format:          textureFormat(t.format),
	}
	if desc != nil {
		wdesc.Label = desc.Label
		if desc.Format != gpu.FormatUndefined {
			wdesc.Format = textureFormat(desc.Format)
		}
	}
	view, err := t.texture.CreateView(wdesc)
	if err != nil {
		return nil, fmt.Errorf("webgpu: create view: %w", err)
	}
	return &TextureView{view: view}, nil
}

func (t *Texture) Release() {
	if t.texture == nil {
		return
	}
	if !t.surface {
		t.texture.Release()
	}
	t.texture = nil
}

type TextureView struct {
	view *wgpu.TextureView
}

func (v *TextureView) Release() {
	if v.view != nil {
		v.view.Release()
		v.view = nil
	}
}
