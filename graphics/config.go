package graphics

import (
	"github.com/plus3/spree/gpu"
)

// Config controls surface setup and the per-frame clear.
type Config struct {
	ClearColor  gpu.Color
	PresentMode gpu.PresentMode
	// MaxTextureDimension caps surface and depth sizes.
	MaxTextureDimension        uint32
	DesiredMaximumFrameLatency uint32
	Label                      string
	Open                       gpu.OpenOptions
}

func DefaultConfig() Config {
	return Config{
		ClearColor:                 gpu.Color{R: 0.19, G: 0.24, B: 0.42, A: 1.0},
		PresentMode:                gpu.PresentModeFifo,
		MaxTextureDimension:        4096,
		DesiredMaximumFrameLatency: 2,
		Label:                      "spree",
		Open: gpu.OpenOptions{
			PowerPreference: gpu.PowerPreferenceHighPerformance,
		},
	}
}
