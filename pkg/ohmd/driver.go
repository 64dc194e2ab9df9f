package ohmd

import (
	"errors"
	"sync"
)

// ErrUnsupported is returned by a driver for any key it does not implement.
// The dispatcher translates it into an unsupported-key failure on the
// owning context.
var ErrUnsupported = errors.New("unsupported value")

// DeviceInfo describes one discoverable device as reported by a driver.
type DeviceInfo struct {
	Vendor  string
	Product string
	Path    string // driver-specific locator, passed back to Open
}

// Properties holds the static values a driver snapshots when it opens a
// device: display geometry, lens placement, projection defaults and the
// panel resolution. Dynamic values (orientation, position, eye matrices)
// are never cached here.
type Properties struct {
	HScreenSize    float32 // meters
	VScreenSize    float32
	LensSeparation float32
	LensVCenter    float32

	LeftFOV     float32 // radians
	LeftAspect  float32
	RightFOV    float32
	RightAspect float32

	IPD float32

	ZNear float32
	ZFar  float32

	DistortionK [6]float32

	HResolution int32 // pixels
	VResolution int32
}

// floatValue returns the cached slot for a static float key, or ok=false
// for dynamic keys that must be served by the driver.
func (p *Properties) floatValue(v FloatValue) ([]float32, bool) {
	switch v {
	case ScreenHorizontalSize:
		return []float32{p.HScreenSize}, true
	case ScreenVerticalSize:
		return []float32{p.VScreenSize}, true
	case LensHorizontalSeparation:
		return []float32{p.LensSeparation}, true
	case LensVerticalPosition:
		return []float32{p.LensVCenter}, true
	case LeftEyeFOV:
		return []float32{p.LeftFOV}, true
	case LeftEyeAspectRatio:
		return []float32{p.LeftAspect}, true
	case RightEyeFOV:
		return []float32{p.RightFOV}, true
	case RightEyeAspectRatio:
		return []float32{p.RightAspect}, true
	case EyeIPD:
		return []float32{p.IPD}, true
	case ProjectionZFar:
		return []float32{p.ZFar}, true
	case ProjectionZNear:
		return []float32{p.ZNear}, true
	case DistortionK:
		return p.DistortionK[:], true
	}
	return nil, false
}

// setFloatValue overwrites the cached slot for a static float key. Returns
// false for dynamic keys.
func (p *Properties) setFloatValue(v FloatValue, in []float32) bool {
	switch v {
	case ScreenHorizontalSize:
		p.HScreenSize = in[0]
	case ScreenVerticalSize:
		p.VScreenSize = in[0]
	case LensHorizontalSeparation:
		p.LensSeparation = in[0]
	case LensVerticalPosition:
		p.LensVCenter = in[0]
	case LeftEyeFOV:
		p.LeftFOV = in[0]
	case LeftEyeAspectRatio:
		p.LeftAspect = in[0]
	case RightEyeFOV:
		p.RightFOV = in[0]
	case RightEyeAspectRatio:
		p.RightAspect = in[0]
	case EyeIPD:
		p.IPD = in[0]
	case ProjectionZFar:
		p.ZFar = in[0]
	case ProjectionZNear:
		p.ZNear = in[0]
	case DistortionK:
		copy(p.DistortionK[:], in)
	default:
		return false
	}
	return true
}

func (p *Properties) intValue(v IntValue) (int32, bool) {
	switch v {
	case ScreenHorizontalResolution:
		return p.HResolution, true
	case ScreenVerticalResolution:
		return p.VResolution, true
	}
	return 0, false
}

// Driver is one backend implementation for a device family.
type Driver interface {
	// Name identifies the driver in log and error messages.
	Name() string
	// Discover reports currently attached devices. It must not block on
	// device I/O and may return nothing, including when enumeration fails.
	Discover() []DeviceInfo
	// Open opens the device previously reported under path.
	Open(path string) (DriverDevice, error)
}

// DriverDevice is one opened device, owned by the driver that created it.
// The core never inspects driver state beyond these entry points.
type DriverDevice interface {
	// Properties returns the static values snapshotted at open time.
	Properties() Properties
	// Update pumps one tick of transport I/O and fusion. It must read only
	// data that is already available, never waiting for a new sample.
	Update() error
	GetFloat(v FloatValue, out []float32) error
	SetFloat(v FloatValue, in []float32) error
	GetInt(v IntValue, out []int32) error
	Close() error
}

var (
	registryMu sync.RWMutex
	registry   []Driver
)

// RegisterDriver adds a driver to the process-wide registry. It is meant to
// be called from driver package init functions; contexts created afterwards
// see the driver, existing contexts do not.
func RegisterDriver(d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, d)
}

func registeredDrivers() []Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Driver, len(registry))
	copy(out, registry)
	return out
}
