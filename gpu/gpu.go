// Package gpu is the WebGPU-shaped device layer the renderer talks to.
// The desktop binary uses the webgpu backend; tests and the inspector use headless.
package gpu

import (
	"errors"
)

var (
	// ErrNoAdapter means no adapter compatible with the surface was found.
	ErrNoAdapter = errors.New("gpu: no compatible adapter")
	// ErrSurfaceOutdated means the surface must be reconfigured before use.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")
	// ErrSurfaceLost means the surface must be reconfigured before use.
	ErrSurfaceLost = errors.New("gpu: surface lost")
	// ErrTimeout means no surface texture became available in time.
	ErrTimeout = errors.New("gpu: surface texture timeout")
	// ErrReleased is returned when a released object is used.
	ErrReleased = errors.New("gpu: object released")
)

// SurfaceTarget is whatever the backend needs to create a surface, such as a
// window handle. Backends document the type they accept.
type SurfaceTarget any

// PowerPreference steers adapter selection.
type PowerPreference uint8

const (
	PowerPreferenceUndefined PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceHighPerformance
)

// OpenOptions configure adapter and device selection.
type OpenOptions struct {
	PowerPreference      PowerPreference
	ForceFallbackAdapter bool
	// Backend names a native API ("vulkan", "metal", "dx12", "gl"). Empty lets
	// the backend choose.
	Backend string
	Label   string
}

// AdapterInfo describes the selected adapter for logging.
type AdapterInfo struct {
	Name     string
	Vendor   string
	Backend  string
	Type     string
	Features []string
}

// Backend opens a device and a presentation surface for a target.
type Backend interface {
	Open(target SurfaceTarget, opts OpenOptions) (Device, Surface, error)
}

// Device creates GPU resources.
type Device interface {
	Info() AdapterInfo
	Queue() Queue
	CreateTexture(desc *TextureDescriptor) (Texture, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)
	Release()
}

// Queue executes command buffers in submission order.
type Queue interface {
	Submit(buffers ...CommandBuffer)
}

// SurfaceCapabilities lists what a surface supports on the selected adapter,
// in the adapter's preference order.
type SurfaceCapabilities struct {
	Formats      []TextureFormat
	PresentModes []PresentMode
	AlphaModes   []AlphaMode
}

// SurfaceConfiguration is applied by Surface.Configure.
type SurfaceConfiguration struct {
	Usage                      TextureUsage
	Format                     TextureFormat
	Width                      uint32
	Height                     uint32
	PresentMode                PresentMode
	AlphaMode                  AlphaMode
	DesiredMaximumFrameLatency uint32
}

// Surface is the window's swapchain.
type Surface interface {
	Capabilities() SurfaceCapabilities
	Configure(device Device, config *SurfaceConfiguration) error
	// CurrentTexture returns the next texture to render into. It returns
	// ErrSurfaceOutdated, ErrSurfaceLost or ErrTimeout for transient failures.
	CurrentTexture() (Texture, error)
	Present() error
	Release()
}

// Extent is a 2D size in texels.
type Extent struct {
	Width  uint32
	Height uint32
}

type TextureDescriptor struct {
	Label         string
	Size          Extent
	Format        TextureFormat
	Usage         TextureUsage
	MipLevelCount uint32
	SampleCount   uint32
}

type TextureViewDescriptor struct {
	Label  string
	Format TextureFormat
}

type Texture interface {
	Width() uint32
	Height() uint32
	Format() TextureFormat
	CreateView(desc *TextureViewDescriptor) (TextureView, error)
	Release()
}

type TextureView interface {
	Release()
}

// Color is a linear RGBA clear color.
type Color struct {
	R, G, B, A float64
}

type LoadOp uint8

const (
	LoadOpClear LoadOp = iota
	LoadOpLoad
)

type StoreOp uint8

const (
	StoreOpStore StoreOp = iota
	StoreOpDiscard
)

type ColorAttachment struct {
	View       TextureView
	LoadOp     LoadOp
	StoreOp    StoreOp
	ClearValue Color
}

type DepthStencilAttachment struct {
	View            TextureView
	DepthLoadOp     LoadOp
	DepthStoreOp    StoreOp
	DepthClearValue float32
}

type RenderPassDescriptor struct {
	Label                  string
	ColorAttachments       []ColorAttachment
	DepthStencilAttachment *DepthStencilAttachment
}

// CommandEncoder records passes into a CommandBuffer.
type CommandEncoder interface {
	InsertDebugMarker(label string)
	BeginRenderPass(desc *RenderPassDescriptor) (RenderPass, error)
	Finish() (CommandBuffer, error)
	Release()
}

// RenderPass must be ended before its encoder is finished.
type RenderPass interface {
	End() error
	Release()
}

type CommandBuffer interface {
	Release()
}
