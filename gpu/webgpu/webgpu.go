// Package webgpu implements the gpu interfaces on wgpu-native through
// github.com/cogentcore/webgpu. Surfaces are created from a *glfw.Window.
package webgpu

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/plus3/spree/gpu"
)

// BackendEnv names the environment variable consulted when OpenOptions.Backend is empty.
const BackendEnv = "WGPU_BACKEND"

// Backend opens wgpu devices for glfw windows.
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

// ParseBackendType maps a backend name to a wgpu backend type. Empty selects
// the platform default.
func ParseBackendType(name string) (wgpu.BackendType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return wgpu.BackendTypeUndefined, nil
	case "vulkan", "vk":
		return wgpu.BackendTypeVulkan, nil
	case "metal", "mtl":
		return wgpu.BackendTypeMetal, nil
	case "dx12", "d3d12":
		return wgpu.BackendTypeD3D12, nil
	case "gl", "opengl", "gles":
		return wgpu.BackendTypeOpenGL, nil
	default:
		return wgpu.BackendTypeUndefined, fmt.Errorf("unknown backend %q", name)
	}
}

// Open creates an instance, a surface for target (a *glfw.Window), a
// compatible adapter and a device.
func (b *Backend) Open(target gpu.SurfaceTarget, opts gpu.OpenOptions) (gpu.Device, gpu.Surface, error) {
	window, ok := target.(*glfw.Window)
	if !ok || window == nil {
		return nil, nil, fmt.Errorf("webgpu: surface target must be *glfw.Window, got %T", target)
	}

	name := opts.Backend
	if name == "" {
		name = os.Getenv(BackendEnv)
	}
	backendType, err := ParseBackendType(name)
	if err != nil {
		return nil, nil, err
	}

	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	if surface == nil {
		instance.Release()
		return nil, nil, errors.New("webgpu: create surface failed")
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    surface,
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
		PowerPreference:      powerPreference(opts.PowerPreference),
		BackendType:          backendType,
	})
	if err != nil || adapter == nil {
		surface.Release()
		instance.Release()
		if err == nil {
			err = errors.New("adapter is nil")
		}
		return nil, nil, fmt.Errorf("%w: %v", gpu.ErrNoAdapter, err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: opts.Label})
	if err != nil {
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, nil, fmt.Errorf("webgpu: request device: %w", err)
	}

	d := &Device{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    &Queue{queue: device.GetQueue()},
		info:     adapterInfo(adapter),
	}
	return d, &Surface{surface: surface, adapter: adapter}, nil
}

func adapterInfo(adapter *wgpu.Adapter) gpu.AdapterInfo {
	info := adapter.GetInfo()
	features := adapter.EnumerateFeatures()
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, fmt.Sprint(f))
	}
	return gpu.AdapterInfo{
		Name:     info.Name,
		Vendor:   info.VendorName,
		Backend:  fmt.Sprint(info.BackendType),
		Type:     fmt.Sprint(info.AdapterType),
		Features: names,
	}
}

func powerPreference(p gpu.PowerPreference) wgpu.PowerPreference {
	switch p {
	case gpu.PowerPreferenceLowPower:
		return wgpu.PowerPreferenceLowPower
	case gpu.PowerPreferenceHighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	default:
		return wgpu.PowerPreferenceUndefined
	}
}

// Device owns the instance, adapter and device.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *Queue
	info     gpu.AdapterInfo
}

func (d *Device) Info() gpu.AdapterInfo { return d.info }

func (d *Device) Queue() gpu.Queue { return d.queue }

func (d *Device) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	mips, samples := desc.MipLevelCount, desc.SampleCount
	if mips == 0 {
		mips = 1
	}
	if samples == 0 {
		samples = 1
	}
	texture, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     desc.Label,
		Usage:     textureUsage(desc.Usage),
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        textureFormat(desc.Format),
		MipLevelCount: mips,
		SampleCount:   samples,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create texture %q: %w", desc.Label, err)
	}
	return &Texture{texture: texture, width: desc.Size.Width, height: desc.Size.Height, format: desc.Format}, nil
}

func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	encoder, err := d.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("webgpu: create command encoder: %w", err)
	}
	return &CommandEncoder{encoder: encoder}, nil
}

func (d *Device) Release() {
	d.queue.queue.Release()
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
}

type Queue struct {
	queue *wgpu.Queue
}

func (q *Queue) Submit(buffers ...gpu.CommandBuffer) {
	native := make([]*wgpu.CommandBuffer, 0, len(buffers))
	for _, b := range buffers {
		if cb, ok := b.(*CommandBuffer); ok {
			native = append(native, cb.buffer)
		}
	}
	q.queue.Submit(native...)
}
