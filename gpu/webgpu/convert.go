package webgpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/plus3/spree/gpu"
)

var formats = map[gpu.TextureFormat]wgpu.TextureFormat{
	gpu.FormatBGRA8Unorm:     wgpu.TextureFormatBGRA8Unorm,
	gpu.FormatBGRA8UnormSrgb: wgpu.TextureFormatBGRA8UnormSrgb,
	gpu.FormatRGBA8Unorm:     wgpu.TextureFormatRGBA8Unorm,
	gpu.FormatRGBA8UnormSrgb: wgpu.TextureFormatRGBA8UnormSrgb,
	gpu.FormatRGBA16Float:    wgpu.TextureFormatRGBA16Float,
	gpu.FormatRGB10A2Unorm:   wgpu.TextureFormatRGB10A2Unorm,
	gpu.FormatDepth32Float:   wgpu.TextureFormatDepth32Float,
}

func textureFormat(f gpu.TextureFormat) wgpu.TextureFormat {
	if native, ok := formats[f]; ok {
		return native
	}
	return wgpu.TextureFormatUndefined
}

func fromTextureFormat(native wgpu.TextureFormat) (gpu.TextureFormat, bool) {
	for f, n := range formats {
		if n == native {
			return f, true
		}
	}
	return gpu.FormatUndefined, false
}

func textureUsage(u gpu.TextureUsage) wgpu.TextureUsage {
	var out wgpu.TextureUsage
	if u.Has(gpu.UsageCopySrc) {
		out |= wgpu.TextureUsageCopySrc
	}
	if u.Has(gpu.UsageCopyDst) {
		out |= wgpu.TextureUsageCopyDst
	}
	if u.Has(gpu.UsageTextureBinding) {
		out |= wgpu.TextureUsageTextureBinding
	}
	if u.Has(gpu.UsageStorageBinding) {
		out |= wgpu.TextureUsageStorageBinding
	}
	if u.Has(gpu.UsageRenderAttachment) {
		out |= wgpu.TextureUsageRenderAttachment
	}
	return out
}

func presentMode(m gpu.PresentMode) wgpu.PresentMode {
	switch m {
	case gpu.PresentModeFifoRelaxed:
		return wgpu.PresentModeFifoRelaxed
	case gpu.PresentModeImmediate:
		return wgpu.PresentModeImmediate
	case gpu.PresentModeMailbox:
		return wgpu.PresentModeMailbox
	default:
		return wgpu.PresentModeFifo
	}
}

func fromPresentMode(m wgpu.PresentMode) (gpu.PresentMode, bool) {
	switch m {
	case wgpu.PresentModeFifo:
		return gpu.PresentModeFifo, true
	case wgpu.PresentModeFifoRelaxed:
		return gpu.PresentModeFifoRelaxed, true
	case wgpu.PresentModeImmediate:
		return gpu.PresentModeImmediate, true
	case wgpu.PresentModeMailbox:
		return gpu.PresentModeMailbox, true
	default:
		return 0, false
	}
}

func alphaMode(a gpu.AlphaMode) wgpu.CompositeAlphaMode {
	switch a {
	case gpu.AlphaModeOpaque:
		return wgpu.CompositeAlphaModeOpaque
	case gpu.AlphaModePreMultiplied:
		return wgpu.CompositeAlphaModePremultiplied
	case gpu.AlphaModePostMultiplied:
		return wgpu.CompositeAlphaModeUnpremultiplied
	case gpu.AlphaModeInherit:
		return wgpu.CompositeAlphaModeInherit
	default:
		return wgpu.CompositeAlphaModeAuto
	}
}

func fromAlphaMode(a wgpu.CompositeAlphaMode) gpu.AlphaMode {
	switch a {
	case wgpu.CompositeAlphaModeOpaque:
		return gpu.AlphaModeOpaque
	case wgpu.CompositeAlphaModePremultiplied:
		return gpu.AlphaModePreMultiplied
	case wgpu.CompositeAlphaModeUnpremultiplied:
		return gpu.AlphaModePostMultiplied
	case wgpu.CompositeAlphaModeInherit:
		return gpu.AlphaModeInherit
	default:
		return gpu.AlphaModeAuto
	}
}

func loadOp(op gpu.LoadOp) wgpu.LoadOp {
	if op == gpu.LoadOpLoad {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

func storeOp(op gpu.StoreOp) wgpu.StoreOp {
	if op == gpu.StoreOpDiscard {
		return wgpu.StoreOpDiscard
	}
	return wgpu.StoreOpStore
}
