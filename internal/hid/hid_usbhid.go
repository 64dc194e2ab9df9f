//go:build !windows

package hid

import (
	"sync"
	"time"

	usbhid "rafaelmartins.com/p/usbhid"
)

type usbManager struct{}

func newManager() (Manager, error) { return &usbManager{}, nil }

func (m *usbManager) List() ([]Info, error) {
	devs, err := usbhid.Enumerate(nil)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(devs))
	for _, d := range devs {
		out = append(out, Info{
			Path:         d.Path(),
			VendorID:     d.VendorId(),
			ProductID:    d.ProductId(),
			Product:      d.Product(),
			Manufacturer: d.Manufacturer(),
		})
	}
	return out, nil
}

func (m *usbManager) Open(info Info) (Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.Path() == info.Path
	}, true, false)
	if err != nil {
		return nil, err
	}
	dev := &usbDevice{
		d:       d,
		reports: make(chan []byte, 8),
		done:    make(chan struct{}),
	}
	go dev.pump()
	return dev, nil
}

type usbDevice struct {
	d         *usbhid.Device
	reports   chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// pump polls input reports into a small buffer so ReadInput never has to
// wait on the transport. When the buffer is full the oldest report is
// dropped; consumers want the freshest sample.
func (d *usbDevice) pump() {
	for {
		select {
		case <-d.done:
			return
		default:
		}
		_, buf, err := d.d.GetInputReport()
		if err != nil {
			return
		}
		b := make([]byte, len(buf))
		copy(b, buf)
		select {
		case d.reports <- b:
		default:
			select {
			case <-d.reports:
			default:
			}
			select {
			case d.reports <- b:
			default:
			}
		}
		time.Sleep(time.Millisecond)
	}
}

func (d *usbDevice) ReadInput() ([]byte, error) {
	select {
	case b := <-d.reports:
		return b, nil
	default:
		return nil, nil
	}
}

func (d *usbDevice) WriteFeature(reportID byte, data []byte) error {
	return d.d.SetFeatureReport(reportID, data)
}

func (d *usbDevice) ReadFeature(reportID byte) ([]byte, error) {
	return d.d.GetFeatureReport(reportID)
}

func (d *usbDevice) Close() error {
	d.closeOnce.Do(func() { close(d.done) })
	return d.d.Close()
}
