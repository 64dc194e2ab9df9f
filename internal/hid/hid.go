// Package hid abstracts the HID transport used by device drivers: listing
// attached HID devices and opening them for report I/O. Backends are
// selected per OS at build time.
package hid

// Device represents an opened HID device.
type Device interface {
	// ReadInput returns one pending input report, or (nil, nil) when no
	// report is available. It never waits for a new report.
	ReadInput() ([]byte, error)
	WriteFeature(reportID byte, data []byte) error
	ReadFeature(reportID byte) ([]byte, error)
	Close() error
}

// Info represents a HID device descriptor.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Product      string
	Manufacturer string
}

// Manager enumerates and opens HID devices.
type Manager interface {
	List() ([]Info, error)
	Open(info Info) (Device, error)
}

// NewManager returns the OS-specific HID manager.
func NewManager() (Manager, error) {
	return newManager()
}
