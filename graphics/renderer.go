package graphics

import (
	"errors"
	"fmt"

	"github.com/plus3/spree/gpu"
)

// ErrFrameSkipped is returned by Render when no surface texture was available.
// It is transient: the caller should simply render again next tick.
var ErrFrameSkipped = errors.New("graphics: frame skipped")

// FrameStats counts frames since the renderer was created.
type FrameStats struct {
	Rendered uint64
	Skipped  uint64
}

// FrameRenderer records and submits one frame per call.
type FrameRenderer struct {
	clearColor gpu.Color
	stats      FrameStats
}

func NewFrameRenderer(cfg Config) *FrameRenderer {
	return &FrameRenderer{clearColor: cfg.ClearColor}
}

// SetClearColor changes the color the frame is cleared to.
func (r *FrameRenderer) SetClearColor(c gpu.Color) {
	r.clearColor = c
}

func (r *FrameRenderer) ClearColor() gpu.Color {
	return r.clearColor
}

func (r *FrameRenderer) Stats() FrameStats {
	return r.stats
}

// Render acquires the surface texture, clears color and depth in one pass,
// submits exactly one command buffer and presents. An outdated or lost surface
// is reconfigured and the frame is skipped, as is a timed-out acquire.
func (r *FrameRenderer) Render(m *SurfaceManager) error {
	texture, err := m.surface.CurrentTexture()
	switch {
	case err == nil:
	case errors.Is(err, gpu.ErrSurfaceOutdated), errors.Is(err, gpu.ErrSurfaceLost):
		r.stats.Skipped++
		if rerr := m.Reconfigure(); rerr != nil {
			return fmt.Errorf("%w: %w", ErrFrameSkipped, rerr)
		}
		return ErrFrameSkipped
	case errors.Is(err, gpu.ErrTimeout):
		r.stats.Skipped++
		return ErrFrameSkipped
	default:
		return fmt.Errorf("graphics: acquire surface texture: %w", err)
	}
	defer texture.Release()

	view, err := texture.CreateView(&gpu.TextureViewDescriptor{Label: "surface", Format: m.surfCfg.Format})
	if err != nil {
		return fmt.Errorf("graphics: surface view: %w", err)
	}
	defer view.Release()

	encoder, err := m.device.CreateCommandEncoder(m.cfg.Label)
	if err != nil {
		return fmt.Errorf("graphics: command encoder: %w", err)
	}
	defer encoder.Release()

	encoder.InsertDebugMarker("Render scene")
	if err := r.clearPass(encoder, view, m.depthView); err != nil {
		return err
	}

	buffer, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("graphics: finish: %w", err)
	}
	defer buffer.Release()

	m.device.Queue().Submit(buffer)
	if err := m.surface.Present(); err != nil {
		return fmt.Errorf("graphics: present: %w", err)
	}
	r.stats.Rendered++
	return nil
}

// clearPass begins and ends the clear pass. The pass is always ended before
// the encoder can be finished.
func (r *FrameRenderer) clearPass(encoder gpu.CommandEncoder, color, depth gpu.TextureView) error {
	pass, err := encoder.BeginRenderPass(&gpu.RenderPassDescriptor{
		Label: "clear",
		ColorAttachments: []gpu.ColorAttachment{{
			View:       color,
			LoadOp:     gpu.LoadOpClear,
			StoreOp:    gpu.StoreOpStore,
			ClearValue: r.clearColor,
		}},
		DepthStencilAttachment: &gpu.DepthStencilAttachment{
			View:            depth,
			DepthLoadOp:     gpu.LoadOpClear,
			DepthStoreOp:    gpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	if err != nil {
		return fmt.Errorf("graphics: begin render pass: %w", err)
	}
	defer pass.Release()

	if err := pass.End(); err != nil {
		return fmt.Errorf("graphics: end render pass: %w", err)
	}
	return nil
}
