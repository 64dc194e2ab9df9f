package ohmd

import (
	"errors"
	"testing"
)

type fakeDriver struct {
	name    string
	devices []DeviceInfo
	openErr error
	opened  []*fakeDevice
}

func (f *fakeDriver) Name() string { return f.name }

func (f *fakeDriver) Discover() []DeviceInfo { return f.devices }

func (f *fakeDriver) Open(path string) (DriverDevice, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	for _, info := range f.devices {
		if info.Path == path {
			dv := &fakeDevice{
				props: Properties{
					HScreenSize: 0.15,
					VScreenSize: 0.09,
					IPD:         0.061,
					ZNear:       0.1,
					ZFar:        1000,
					HResolution: 1280,
					VResolution: 800,
				},
				quat: [4]float32{0, 0, 0, 1},
			}
			f.opened = append(f.opened, dv)
			return dv, nil
		}
	}
	return nil, errors.New("no device at path")
}

type fakeDevice struct {
	props     Properties
	quat      [4]float32
	updates   int
	closed    bool
	updateErr error
	closeErr  error
}

func (d *fakeDevice) Properties() Properties { return d.props }

func (d *fakeDevice) Update() error {
	d.updates++
	return d.updateErr
}

func (d *fakeDevice) GetFloat(v FloatValue, out []float32) error {
	switch v {
	case RotationQuat:
		copy(out, d.quat[:])
		return nil
	case PositionVector:
		copy(out, []float32{0, 0, 0})
		return nil
	}
	return ErrUnsupported
}

func (d *fakeDevice) SetFloat(v FloatValue, in []float32) error {
	return ErrUnsupported
}

func (d *fakeDevice) GetInt(v IntValue, out []int32) error {
	return ErrUnsupported
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return d.closeErr
}

func twoDeviceDriver() *fakeDriver {
	return &fakeDriver{
		name: "fake",
		devices: []DeviceInfo{
			{Vendor: "Acme", Product: "HMD Mark I", Path: "usb:1"},
			{Vendor: "Acme", Product: "HMD Mark II", Path: "usb:2"},
		},
	}
}

func TestCreateContextHasNoError(t *testing.T) {
	ctx := CreateContext(twoDeviceDriver())
	defer ctx.Destroy()
	if got := ctx.GetError(); got != "" {
		t.Fatalf("fresh context reports error %q", got)
	}
}

func TestProbeAndListStrings(t *testing.T) {
	ctx := CreateContext(twoDeviceDriver())
	defer ctx.Destroy()

	if n := ctx.Probe(); n != 2 {
		t.Fatalf("probe found %d devices, want 2", n)
	}
	for i, want := range []struct{ vendor, product, path string }{
		{"Acme", "HMD Mark I", "usb:1"},
		{"Acme", "HMD Mark II", "usb:2"},
	} {
		if got := ctx.ListGetString(i, Vendor); got != want.vendor {
			t.Errorf("vendor[%d] = %q, want %q", i, got, want.vendor)
		}
		if got := ctx.ListGetString(i, Product); got != want.product {
			t.Errorf("product[%d] = %q, want %q", i, got, want.product)
		}
		if got := ctx.ListGetString(i, Path); got != want.path {
			t.Errorf("path[%d] = %q, want %q", i, got, want.path)
		}
	}
	if got := ctx.GetError(); got != "" {
		t.Fatalf("valid lookups recorded error %q", got)
	}

	if got := ctx.ListGetString(2, Vendor); got != "" {
		t.Fatalf("out-of-range index returned %q", got)
	}
	if ctx.GetError() == "" {
		t.Fatal("out-of-range index did not record an error")
	}
	if got := ctx.ListGetString(-1, Vendor); got != "" {
		t.Fatalf("negative index returned %q", got)
	}
}

func TestListBeforeProbeFails(t *testing.T) {
	ctx := CreateContext(twoDeviceDriver())
	defer ctx.Destroy()

	if got := ctx.ListGetString(0, Vendor); got != "" {
		t.Fatalf("list before probe returned %q", got)
	}
	if ctx.GetError() == "" {
		t.Fatal("list before probe did not record an error")
	}
}

func TestOpenWithNoDevices(t *testing.T) {
	ctx := CreateContext(&fakeDriver{name: "empty"})
	defer ctx.Destroy()

	if n := ctx.Probe(); n != 0 {
		t.Fatalf("probe found %d devices, want 0", n)
	}
	if dev := ctx.ListOpenDevice(0); dev != nil {
		t.Fatal("open on empty enumeration succeeded")
	}
	if ctx.GetError() == "" {
		t.Fatal("failed open did not record an error")
	}
}

func TestOpenFailurePropagatesDriverError(t *testing.T) {
	drv := twoDeviceDriver()
	drv.openErr = errors.New("transport broke")
	ctx := CreateContext(drv)
	defer ctx.Destroy()

	ctx.Probe()
	if dev := ctx.ListOpenDevice(0); dev != nil {
		t.Fatal("open succeeded despite driver failure")
	}
	if ctx.GetError() == "" {
		t.Fatal("driver failure did not record an error")
	}
}

func TestUpdatePumpsEveryOpenHandle(t *testing.T) {
	drv := twoDeviceDriver()
	ctx := CreateContext(drv)
	defer ctx.Destroy()

	ctx.Probe()
	if dev := ctx.ListOpenDevice(0); dev == nil {
		t.Fatalf("open failed: %s", ctx.GetError())
	}
	if dev := ctx.ListOpenDevice(1); dev == nil {
		t.Fatalf("open failed: %s", ctx.GetError())
	}

	for i := 0; i < 100; i++ {
		ctx.Update()
	}
	for i, dv := range drv.opened {
		if dv.updates != 100 {
			t.Errorf("device %d saw %d updates, want 100", i, dv.updates)
		}
	}
}

func TestUpdateRecordsDriverErrorWithoutClosing(t *testing.T) {
	drv := twoDeviceDriver()
	ctx := CreateContext(drv)
	defer ctx.Destroy()

	ctx.Probe()
	dev := ctx.ListOpenDevice(0)
	if dev == nil {
		t.Fatalf("open failed: %s", ctx.GetError())
	}
	drv.opened[0].updateErr = errors.New("device unplugged")

	ctx.Update()
	if ctx.GetError() == "" {
		t.Fatal("update failure did not record an error")
	}

	// Reads keep serving the last known values.
	var quat [4]float32
	if dev.GetFloat(RotationQuat, quat[:]) != StatusOK {
		t.Fatalf("read after update failure: %s", ctx.GetError())
	}
}

func TestReprobeInvalidatesIndicesNotHandles(t *testing.T) {
	drv := twoDeviceDriver()
	ctx := CreateContext(drv)
	defer ctx.Destroy()

	ctx.Probe()
	dev := ctx.ListOpenDevice(1)
	if dev == nil {
		t.Fatalf("open failed: %s", ctx.GetError())
	}

	drv.devices = drv.devices[:1]
	if n := ctx.Probe(); n != 1 {
		t.Fatalf("re-probe found %d devices, want 1", n)
	}
	if got := ctx.ListGetString(1, Vendor); got != "" {
		t.Fatal("stale index survived re-probe")
	}

	var quat [4]float32
	if dev.GetFloat(RotationQuat, quat[:]) != StatusOK {
		t.Fatalf("open handle broke across re-probe: %s", ctx.GetError())
	}
}

func TestDestroyClosesAllHandlesBestEffort(t *testing.T) {
	drv := twoDeviceDriver()
	ctx := CreateContext(drv)

	ctx.Probe()
	ctx.ListOpenDevice(0)
	ctx.ListOpenDevice(1)
	drv.opened[0].closeErr = errors.New("stuck")

	ctx.Destroy()
	for i, dv := range drv.opened {
		if !dv.closed {
			t.Errorf("device %d not closed by destroy", i)
		}
	}
}

func TestDestroyWithNoHandles(t *testing.T) {
	ctx := CreateContext(twoDeviceDriver())
	ctx.Destroy()
}

func TestProbeClampsLongStrings(t *testing.T) {
	long := make([]byte, StrSize+50)
	for i := range long {
		long[i] = 'x'
	}
	drv := &fakeDriver{
		name:    "long",
		devices: []DeviceInfo{{Vendor: string(long), Product: "p", Path: "usb:1"}},
	}
	ctx := CreateContext(drv)
	defer ctx.Destroy()

	ctx.Probe()
	if got := ctx.ListGetString(0, Vendor); len(got) != StrSize {
		t.Fatalf("vendor string length %d, want %d", len(got), StrSize)
	}
}
