// Package hidhmd implements a generic driver for HID-attached head-mounted
// displays. Discovery matches enumerated HID devices against a table of
// known vendor/product IDs; opened devices pump input reports each tick and
// hand them to an externally supplied packet decoder and sensor fuser.
// Without those collaborators the driver still serves display geometry,
// but orientation and position read as unsupported.
package hidhmd

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/seagrayinc/gohmd/internal/hid"
	"github.com/seagrayinc/gohmd/pkg/ohmd"
)

func init() {
	d, err := New()
	if err != nil {
		slog.Warn("hidhmd driver unavailable", slog.Any("error", err))
		return
	}
	ohmd.RegisterDriver(d)
}

// Sample is one decoded inertial reading handed to the fuser.
type Sample struct {
	Gyro      [3]float32 // rad/s
	Accel     [3]float32 // m/s^2
	Timestamp uint32     // device ticks
}

// Decoder turns a vendor-specific input report into inertial samples.
// Implementations are supplied per device family by the embedder.
type Decoder interface {
	Decode(report []byte) ([]Sample, error)
}

// Fuser combines inertial samples into a pose estimate. Orientation and
// Position return the most recent estimate without blocking.
type Fuser interface {
	Push(Sample)
	Orientation() [4]float32
	Position() [3]float32
}

type model struct {
	vendor  string
	product string
	props   ohmd.Properties
}

// knownModels maps vendor/product ID pairs to the static geometry of HMDs
// this driver recognizes.
var knownModels = map[[2]uint16]model{
	{0x2833, 0x0001}: {
		vendor:  "Oculus VR, Inc.",
		product: "Rift (Devkit)",
		props: ohmd.Properties{
			HScreenSize:    0.149760,
			VScreenSize:    0.093600,
			LensSeparation: 0.063500,
			LensVCenter:    0.046800,
			LeftFOV:        2.190961,
			LeftAspect:     0.8,
			RightFOV:       2.190961,
			RightAspect:    0.8,
			IPD:            0.061,
			ZNear:          0.1,
			ZFar:           1000.0,
			HResolution:    1280,
			VResolution:    800,
		},
	},
	{0x2833, 0x0021}: {
		vendor:  "Oculus VR, Inc.",
		product: "Rift (DK2)",
		props: ohmd.Properties{
			HScreenSize:    0.125760,
			VScreenSize:    0.070700,
			LensSeparation: 0.063500,
			LensVCenter:    0.035350,
			LeftFOV:        1.641514,
			LeftAspect:     0.888885,
			RightFOV:       1.641514,
			RightAspect:    0.888885,
			IPD:            0.061,
			ZNear:          0.1,
			ZFar:           1000.0,
			HResolution:    1920,
			VResolution:    1080,
		},
	},
}

// Option configures the driver.
type Option func(*Driver)

// WithManager substitutes the HID manager, used by tests.
func WithManager(m hid.Manager) Option {
	return func(d *Driver) { d.mgr = m }
}

// WithDecoder installs the packet decoder for opened devices.
func WithDecoder(dec Decoder) Option {
	return func(d *Driver) { d.decoder = dec }
}

// WithFuserFactory installs a factory producing one fuser per opened
// device.
func WithFuserFactory(f func() Fuser) Option {
	return func(d *Driver) { d.newFuser = f }
}

// Driver implements ohmd.Driver over the HID transport.
type Driver struct {
	mgr      hid.Manager
	decoder  Decoder
	newFuser func() Fuser

	mu   sync.Mutex
	seen map[string]hid.Info // path -> descriptor from the last Discover
}

func New(opts ...Option) (*Driver, error) {
	d := &Driver{seen: make(map[string]hid.Info)}
	for _, opt := range opts {
		opt(d)
	}
	if d.mgr == nil {
		mgr, err := hid.NewManager()
		if err != nil {
			return nil, fmt.Errorf("hid manager: %w", err)
		}
		d.mgr = mgr
	}
	return d, nil
}

func (d *Driver) Name() string { return "hidhmd" }

func (d *Driver) Discover() []ohmd.DeviceInfo {
	infos, err := d.mgr.List()
	if err != nil {
		slog.Warn("hid enumeration failed", slog.Any("error", err))
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = make(map[string]hid.Info)

	var out []ohmd.DeviceInfo
	for _, info := range infos {
		m, ok := knownModels[[2]uint16{info.VendorID, info.ProductID}]
		if !ok {
			continue
		}
		d.seen[info.Path] = info
		out = append(out, ohmd.DeviceInfo{
			Vendor:  m.vendor,
			Product: m.product,
			Path:    info.Path,
		})
	}
	return out
}

func (d *Driver) Open(path string) (ohmd.DriverDevice, error) {
	d.mu.Lock()
	info, ok := d.seen[path]
	d.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no discovered device at %q", path)
	}
	m, ok := knownModels[[2]uint16{info.VendorID, info.ProductID}]
	if !ok {
		return nil, fmt.Errorf("device at %q is not a known HMD", path)
	}
	hd, err := d.mgr.Open(info)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	dev := &device{
		hd:      hd,
		props:   m.props,
		decoder: d.decoder,
	}
	if d.newFuser != nil {
		dev.fuser = d.newFuser()
	}
	return dev, nil
}

type device struct {
	hd      hid.Device
	props   ohmd.Properties
	decoder Decoder
	fuser   Fuser
}

func (dv *device) Properties() ohmd.Properties { return dv.props }

// Update drains the reports the transport has already buffered and feeds
// them through the decoder into the fuser. It returns once no report is
// pending; it never waits for a new one.
func (dv *device) Update() error {
	for {
		report, err := dv.hd.ReadInput()
		if err != nil {
			return fmt.Errorf("read input report: %w", err)
		}
		if report == nil {
			return nil
		}
		if dv.decoder == nil || dv.fuser == nil {
			continue
		}
		samples, err := dv.decoder.Decode(report)
		if err != nil {
			slog.Debug("dropping undecodable report", slog.Any("error", err))
			continue
		}
		for _, s := range samples {
			dv.fuser.Push(s)
		}
	}
}

func (dv *device) GetFloat(v ohmd.FloatValue, out []float32) error {
	switch v {
	case ohmd.RotationQuat:
		if dv.fuser == nil {
			return ohmd.ErrUnsupported
		}
		q := dv.fuser.Orientation()
		copy(out, q[:])
		return nil
	case ohmd.PositionVector:
		if dv.fuser == nil {
			return ohmd.ErrUnsupported
		}
		p := dv.fuser.Position()
		copy(out, p[:])
		return nil
	}
	// Eye matrix generation lives with the consuming renderer, not here.
	return ohmd.ErrUnsupported
}

func (dv *device) SetFloat(v ohmd.FloatValue, in []float32) error {
	return ohmd.ErrUnsupported
}

func (dv *device) GetInt(v ohmd.IntValue, out []int32) error {
	return ohmd.ErrUnsupported
}

func (dv *device) Close() error { return dv.hd.Close() }
