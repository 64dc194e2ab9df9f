// Package dummy provides a virtual HMD driver. It always discovers exactly
// one device with fixed display geometry and an identity pose, so the
// runtime stays usable with no hardware attached.
package dummy

import (
	"errors"

	"github.com/seagrayinc/gohmd/pkg/ohmd"
)

func init() {
	ohmd.RegisterDriver(New())
}

// defaultProperties matches a 7" 1280x800 panel with standard lens
// placement, the same defaults the runtime has shipped with since the
// beginning.
func defaultProperties() ohmd.Properties {
	return ohmd.Properties{
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
	}
}

// Driver implements ohmd.Driver.
type Driver struct{}

func New() *Driver { return &Driver{} }

func (d *Driver) Name() string { return "dummy" }

func (d *Driver) Discover() []ohmd.DeviceInfo {
	return []ohmd.DeviceInfo{{
		Vendor:  "gohmd",
		Product: "Dummy Device",
		Path:    "(none)",
	}}
}

func (d *Driver) Open(path string) (ohmd.DriverDevice, error) {
	if path != "(none)" {
		return nil, errors.New("unknown dummy device path")
	}
	return &device{props: defaultProperties()}, nil
}

var identityMatrix = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

type device struct {
	props ohmd.Properties
}

func (dv *device) Properties() ohmd.Properties { return dv.props }

func (dv *device) Update() error { return nil }

func (dv *device) GetFloat(v ohmd.FloatValue, out []float32) error {
	switch v {
	case ohmd.RotationQuat:
		copy(out, []float32{0, 0, 0, 1})
	case ohmd.PositionVector:
		copy(out, []float32{0, 0, 0})
	case ohmd.LeftEyeGLModelviewMatrix, ohmd.RightEyeGLModelviewMatrix,
		ohmd.LeftEyeGLProjectionMatrix, ohmd.RightEyeGLProjectionMatrix:
		copy(out, identityMatrix[:])
	default:
		return ohmd.ErrUnsupported
	}
	return nil
}

func (dv *device) SetFloat(v ohmd.FloatValue, in []float32) error {
	return ohmd.ErrUnsupported
}

func (dv *device) GetInt(v ohmd.IntValue, out []int32) error {
	return ohmd.ErrUnsupported
}

func (dv *device) Close() error { return nil }
