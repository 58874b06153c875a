package gpu

import (
	"fmt"
	"strings"
)

// TextureFormat is a texel format.
type TextureFormat uint32

const (
	FormatUndefined TextureFormat = iota
	FormatBGRA8Unorm
	FormatBGRA8UnormSrgb
	FormatRGBA8Unorm
	FormatRGBA8UnormSrgb
	FormatRGBA16Float
	FormatRGB10A2Unorm
	FormatDepth32Float
)

var formatNames = map[TextureFormat]string{
	FormatUndefined:      "Undefined",
	FormatBGRA8Unorm:     "BGRA8Unorm",
	FormatBGRA8UnormSrgb: "BGRA8UnormSrgb",
	FormatRGBA8Unorm:     "RGBA8Unorm",
	FormatRGBA8UnormSrgb: "RGBA8UnormSrgb",
	FormatRGBA16Float:    "RGBA16Float",
	FormatRGB10A2Unorm:   "RGB10A2Unorm",
	FormatDepth32Float:   "Depth32Float",
}

func (f TextureFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("TextureFormat(%d)", uint32(f))
}

// IsSRGB reports whether writes to the format are gamma encoded.
func (f TextureFormat) IsSRGB() bool {
	return f == FormatBGRA8UnormSrgb || f == FormatRGBA8UnormSrgb
}

// IsDepth reports whether the format is a depth format.
func (f TextureFormat) IsDepth() bool {
	return f == FormatDepth32Float
}

// BytesPerPixel returns the texel size, or 0 for an unknown format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case FormatBGRA8Unorm, FormatBGRA8UnormSrgb, FormatRGBA8Unorm, FormatRGBA8UnormSrgb,
		FormatRGB10A2Unorm, FormatDepth32Float:
		return 4
	case FormatRGBA16Float:
		return 8
	default:
		return 0
	}
}

// TextureUsage is a bit set of allowed texture uses.
type TextureUsage uint32

const (
	UsageCopySrc TextureUsage = 1 << iota
	UsageCopyDst
	UsageTextureBinding
	UsageStorageBinding
	UsageRenderAttachment
)

func (u TextureUsage) Has(flag TextureUsage) bool {
	return u&flag == flag
}

// PresentMode controls how frames are queued for display.
type PresentMode uint8

const (
	PresentModeFifo PresentMode = iota
	PresentModeFifoRelaxed
	PresentModeImmediate
	PresentModeMailbox
)

var presentModeNames = [...]string{
	PresentModeFifo:        "fifo",
	PresentModeFifoRelaxed: "fifo-relaxed",
	PresentModeImmediate:   "immediate",
	PresentModeMailbox:     "mailbox",
}

func (m PresentMode) String() string {
	if int(m) < len(presentModeNames) {
		return presentModeNames[m]
	}
	return fmt.Sprintf("PresentMode(%d)", uint8(m))
}

// ParsePresentMode parses the names printed by PresentMode.String.
func ParsePresentMode(s string) (PresentMode, error) {
	for i, name := range presentModeNames {
		if strings.EqualFold(s, name) {
			return PresentMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown present mode %q", s)
}

// AlphaMode controls how the compositor blends the surface.
type AlphaMode uint8

const (
	AlphaModeAuto AlphaMode = iota
	AlphaModeOpaque
	AlphaModePreMultiplied
	AlphaModePostMultiplied
	AlphaModeInherit
)
