package hid

import (
	"errors"
	"fmt"
)

// MockDevice is an in-memory Device for driver tests. Reports queued with
// Queue are handed out one per ReadInput call.
type MockDevice struct {
	queued   [][]byte
	features map[byte][]byte
	Closed   bool
	ReadErr  error
}

func NewMockDevice() *MockDevice {
	return &MockDevice{features: make(map[byte][]byte)}
}

func (m *MockDevice) Queue(report []byte) {
	m.queued = append(m.queued, report)
}

func (m *MockDevice) ReadInput() ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if len(m.queued) == 0 {
		return nil, nil
	}
	b := m.queued[0]
	m.queued = m.queued[1:]
	return b, nil
}

func (m *MockDevice) WriteFeature(reportID byte, data []byte) error {
	b := make([]byte, len(data))
	copy(b, data)
	m.features[reportID] = b
	return nil
}

func (m *MockDevice) ReadFeature(reportID byte) ([]byte, error) {
	b, ok := m.features[reportID]
	if !ok {
		return nil, fmt.Errorf("no feature report 0x%02X", reportID)
	}
	return b, nil
}

func (m *MockDevice) Close() error {
	m.Closed = true
	return nil
}

// MockManager serves a fixed device list keyed by path.
type MockManager struct {
	Infos   []Info
	Devices map[string]*MockDevice
	ListErr error
}

func (m *MockManager) List() ([]Info, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Infos, nil
}

func (m *MockManager) Open(info Info) (Device, error) {
	d, ok := m.Devices[info.Path]
	if !ok {
		return nil, errors.New("no such device")
	}
	return d, nil
}
