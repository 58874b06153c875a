package headless

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/plus3/spree/gpu"
)

// Surface is an offscreen swapchain. Each CurrentTexture call allocates a new
// texture; Present converts it into an image and releases it. A texture released
// without being presented, or pending when the surface is configured again, is
// dropped.
type Surface struct {
	caps gpu.SurfaceCapabilities

	mu          sync.Mutex
	device      *Device
	config      gpu.SurfaceConfiguration
	configured  int
	acquired    *Texture
	failure     error
	failPersist bool
	presented   int
	last        *image.RGBA
	released    bool
}

func (s *Surface) Capabilities() gpu.SurfaceCapabilities {
	return s.caps
}

func (s *Surface) Configure(device gpu.Device, config *gpu.SurfaceConfiguration) error {
	d, ok := device.(*Device)
	if !ok {
		return fmt.Errorf("headless: foreign device %T", device)
	}
	if config.Width == 0 || config.Height == 0 {
		return fmt.Errorf("headless: invalid surface size %dx%d", config.Width, config.Height)
	}
	if !slices.Contains(s.caps.Formats, config.Format) {
		return fmt.Errorf("headless: unsupported surface format %s", config.Format)
	}
	if !slices.Contains(s.caps.PresentModes, config.PresentMode) {
		return fmt.Errorf("headless: unsupported present mode %s", config.PresentMode)
	}
	if !config.Usage.Has(gpu.UsageRenderAttachment) {
		return errors.New("headless: surface usage must include RenderAttachment")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return gpu.ErrReleased
	}
	if s.acquired != nil {
		s.acquired.Release()
		s.acquired = nil
	}
	s.device = d
	s.config = *config
	s.configured++
	if s.failPersist {
		s.failure = nil
		s.failPersist = false
	}
	return nil
}

// MarkOutdated makes CurrentTexture return gpu.ErrSurfaceOutdated until the
// next Configure.
func (s *Surface) MarkOutdated() {
	s.mu.Lock()
	s.failure, s.failPersist = gpu.ErrSurfaceOutdated, true
	s.mu.Unlock()
}

// MarkLost makes CurrentTexture return gpu.ErrSurfaceLost until the next Configure.
func (s *Surface) MarkLost() {
	s.mu.Lock()
	s.failure, s.failPersist = gpu.ErrSurfaceLost, true
	s.mu.Unlock()
}

// FailNextAcquire makes the next CurrentTexture call return err once.
func (s *Surface) FailNextAcquire(err error) {
	s.mu.Lock()
	s.failure, s.failPersist = err, false
	s.mu.Unlock()
}

func (s *Surface) CurrentTexture() (gpu.Texture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, gpu.ErrReleased
	}
	if err := s.failure; err != nil {
		if !s.failPersist {
			s.failure = nil
		}
		return nil, err
	}
	if s.configured == 0 {
		return nil, errors.New("headless: surface not configured")
	}
	if s.acquired != nil {
		if !s.acquired.Released() {
			return nil, errors.New("headless: previous surface texture not presented")
		}
		// Released without Present: the frame was dropped.
		s.acquired = nil
	}

	t, err := s.device.newTexture(&gpu.TextureDescriptor{
		Label:  "surface",
		Size:   gpu.Extent{Width: s.config.Width, Height: s.config.Height},
		Format: s.config.Format,
		Usage:  s.config.Usage,
	})
	if err != nil {
		return nil, err
	}
	s.acquired = t
	return t, nil
}

func (s *Surface) Present() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.acquired == nil {
		return errors.New("headless: present without a current texture")
	}
	s.last = s.acquired.Image()
	s.acquired.Release()
	s.acquired = nil
	s.presented++
	return nil
}

func (s *Surface) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.acquired != nil {
		s.acquired.Release()
		s.acquired = nil
	}
	s.released = true
}

// Config returns the active configuration.
func (s *Surface) Config() gpu.SurfaceConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Configured returns how many times Configure succeeded.
func (s *Surface) Configured() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured
}

// Presented returns the number of presented frames.
func (s *Surface) Presented() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presented
}

// LastFrame returns the most recently presented frame, or nil.
func (s *Surface) LastFrame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Released reports whether Release was called.
func (s *Surface) Released() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}
