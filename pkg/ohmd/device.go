package ohmd

import "errors"

// Return codes for property access, mirroring the stable public surface:
// zero on success, negative on failure with the reason recorded on the
// owning context.
const (
	StatusOK          = 0
	StatusFailure     = -1
	StatusUnsupported = -2
)

// Device is an opened physical device. The application holds a non-owning
// reference; the handle itself belongs to the Context that opened it and is
// closed by Close or by the context's Destroy. Driver-private state behind
// the handle is opaque to the core.
type Device struct {
	ctx    *Context
	info   DeviceInfo
	driver DriverDevice
	props  Properties
	closed bool
}

// Info returns the enumeration entry this device was opened from.
func (d *Device) Info() DeviceInfo {
	return d.info
}

// GetFloat reads the float property key into out. Static geometry keys are
// served from the cache populated at open; dynamic keys (orientation,
// position, eye matrices) are forwarded to the driver, which answers from
// its most recently fused sample without waiting for new I/O. out must hold
// at least FloatValueLen(key) floats; a shorter buffer fails before
// anything is written.
func (d *Device) GetFloat(key FloatValue, out []float32) int {
	n, ok := d.checkFloat(key, len(out))
	if !ok {
		return StatusFailure
	}
	if cached, ok := d.props.floatValue(key); ok {
		copy(out[:n], cached)
		return StatusOK
	}
	if err := d.driver.GetFloat(key, out[:n]); err != nil {
		return d.driverFailure("get", key.String(), err)
	}
	return StatusOK
}

// SetFloat writes the float property key from in. Static keys update the
// cached value, serving as calibration-style overrides; dynamic keys are
// forwarded to the driver and fail as a no-op when it does not support
// setting them.
func (d *Device) SetFloat(key FloatValue, in []float32) int {
	n, ok := d.checkFloat(key, len(in))
	if !ok {
		return StatusFailure
	}
	if d.props.setFloatValue(key, in[:n]) {
		return StatusOK
	}
	if err := d.driver.SetFloat(key, in[:n]); err != nil {
		return d.driverFailure("set", key.String(), err)
	}
	return StatusOK
}

// GetInt reads the integer property key into out. Both integer keys are
// static panel resolutions and are always served from the open-time cache.
func (d *Device) GetInt(key IntValue, out []int32) int {
	if d.closed {
		d.ctx.setErrorf("device %q is closed", d.info.Product)
		return StatusFailure
	}
	v, ok := d.props.intValue(key)
	if !ok {
		d.ctx.setErrorf("%d is not an integer value key", key)
		return StatusFailure
	}
	if len(out) < 1 {
		d.ctx.setErrorf("buffer for %s holds 0 values, need 1", key)
		return StatusFailure
	}
	out[0] = v
	return StatusOK
}

// Close closes the handle through its driver and detaches it from the
// owning context. A closed handle must not be reused.
func (d *Device) Close() int {
	if d.closed {
		d.ctx.setErrorf("device %q is already closed", d.info.Product)
		return StatusFailure
	}
	d.closed = true
	for i, dev := range d.ctx.devices {
		if dev == d {
			d.ctx.devices = append(d.ctx.devices[:i], d.ctx.devices[i+1:]...)
			break
		}
	}
	if err := d.driver.Close(); err != nil {
		d.ctx.setErrorf("closing %q: %v", d.info.Product, err)
		return StatusFailure
	}
	return StatusOK
}

// checkFloat validates key class, handle liveness and buffer arity, in that
// order, recording the first failure on the context.
func (d *Device) checkFloat(key FloatValue, have int) (int, bool) {
	n, known := floatValueLens[key]
	if !known {
		d.ctx.setErrorf("%d is not a float value key", key)
		return 0, false
	}
	if d.closed {
		d.ctx.setErrorf("device %q is closed", d.info.Product)
		return 0, false
	}
	if have < n {
		d.ctx.setErrorf("buffer for %s holds %d floats, need %d", key, have, n)
		return 0, false
	}
	return n, true
}

func (d *Device) driverFailure(op, key string, err error) int {
	if errors.Is(err, ErrUnsupported) {
		d.ctx.setErrorf("device %q does not support %s of %s", d.info.Product, op, key)
		return StatusUnsupported
	}
	d.ctx.setErrorf("%s %s on %q: %v", op, key, d.info.Product, err)
	return StatusFailure
}
