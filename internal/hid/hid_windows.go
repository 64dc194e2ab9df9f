//go:build windows

package hid

import (
	"fmt"

	hidapi "github.com/sstallion/go-hid"
)

// Windows backend on top of hidapi via sstallion/go-hid.

type hidapiManager struct{}

func newManager() (Manager, error) {
	if err := hidapi.Init(); err != nil {
		return nil, fmt.Errorf("hidapi init: %w", err)
	}
	return &hidapiManager{}, nil
}

func (m *hidapiManager) List() ([]Info, error) {
	var out []Info
	err := hidapi.Enumerate(hidapi.VendorIDAny, hidapi.ProductIDAny, func(d *hidapi.DeviceInfo) error {
		out = append(out, Info{
			Path:         d.Path,
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Product:      d.ProductStr,
			Manufacturer: d.MfrStr,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *hidapiManager) Open(info Info) (Device, error) {
	d, err := hidapi.OpenPath(info.Path)
	if err != nil {
		return nil, err
	}
	if err := d.SetNonblock(true); err != nil {
		d.Close()
		return nil, err
	}
	return &hidapiDevice{d: d}, nil
}

type hidapiDevice struct{ d *hidapi.Device }

func (d *hidapiDevice) ReadInput() ([]byte, error) {
	buf := make([]byte, 64)
	n, err := d.d.Read(buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return buf[:n], nil
}

func (d *hidapiDevice) WriteFeature(reportID byte, data []byte) error {
	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, reportID)
	buf = append(buf, data...)
	_, err := d.d.SendFeatureReport(buf)
	return err
}

func (d *hidapiDevice) ReadFeature(reportID byte) ([]byte, error) {
	buf := make([]byte, 64)
	buf[0] = reportID
	n, err := d.d.GetFeatureReport(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (d *hidapiDevice) Close() error { return d.d.Close() }
