package webgpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/plus3/spree/gpu"
)

type CommandEncoder struct {
	encoder *wgpu.CommandEncoder
}

// InsertDebugMarker logs a failure rather than returning it; a missing marker
// does not invalidate the frame.
func (e *CommandEncoder) InsertDebugMarker(label string) {
	if err := e.encoder.InsertDebugMarker(label); err != nil {
		log.Printf("webgpu: debug marker %q: %v", label, err)
	}
}

func (e *CommandEncoder) BeginRenderPass(desc *gpu.RenderPassDescriptor) (gpu.RenderPass, error) {
	wdesc := &wgpu.RenderPassDescriptor{Label: desc.Label}
	for _, a := range desc.ColorAttachments {
		view, ok := a.View.(*TextureView)
		if !ok {
			return nil, fmt.Errorf("webgpu: foreign color view %T", a.View)
		}
		wdesc.ColorAttachments = append(wdesc.ColorAttachments, wgpu.RenderPassColorAttachment{
			View:       view.view,
			LoadOp:     loadOp(a.LoadOp),
			StoreOp:    storeOp(a.StoreOp),
			ClearValue: wgpu.Color{R: a.ClearValue.R, G: a.ClearValue.G, B: a.ClearValue.B, A: a.ClearValue.A},
		})
	}
	if ds := desc.DepthStencilAttachment; ds != nil {
		view, ok := ds.View.(*TextureView)
		if !ok {
			return nil, fmt.Errorf("webgpu: foreign depth view %T", ds.View)
		}
		wdesc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            view.view,
			DepthLoadOp:     loadOp(ds.DepthLoadOp),
			DepthStoreOp:    storeOp(ds.DepthStoreOp),
			DepthClearValue: ds.DepthClearValue,
		}
	}
	return &RenderPass{pass: e.encoder.BeginRenderPass(wdesc)}, nil
}

func (e *CommandEncoder) Finish() (gpu.CommandBuffer, error) {
	buffer, err := e.encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("webgpu: finish encoder: %w", err)
	}
	return &CommandBuffer{buffer: buffer}, nil
}

func (e *CommandEncoder) Release() {
	e.encoder.Release()
}

type RenderPass struct {
	pass  *wgpu.RenderPassEncoder
	ended bool
}

func (p *RenderPass) End() error {
	if p.ended {
		return errors.New("webgpu: render pass already ended")
	}
	p.ended = true
	if err := p.pass.End(); err != nil {
		return fmt.Errorf("webgpu: end render pass: %w", err)
	}
	return nil
}

func (p *RenderPass) Release() {
	p.pass.Release()
}

type CommandBuffer struct {
	buffer *wgpu.CommandBuffer
}

func (c *CommandBuffer) Release() {
	c.buffer.Release()
}
