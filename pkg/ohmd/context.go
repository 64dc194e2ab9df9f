// Package ohmd is the device abstraction core for immersive-technology
// input devices. A Context owns a set of backend drivers, the device
// enumeration produced by the most recent probe, and every device handle
// opened through it. Property access is dispatched through enum keys with
// fixed per-key buffer arities.
//
// A Context and everything it owns must be driven from one logical thread
// of control; independent contexts are fully isolated from each other.
package ohmd

import (
	"fmt"
	"log/slog"
)

// StrSize bounds every enumeration string. Longer driver-reported strings
// are truncated during probe.
const StrSize = 256

type listEntry struct {
	info   DeviceInfo
	driver Driver
}

// Context is the top-level object an application holds.
type Context struct {
	drivers []Driver
	list    []listEntry
	devices []*Device
	lastErr string
	probed  bool
}

// CreateContext allocates a context over the process-wide driver registry.
// Extra drivers, if any, are used alongside the registered ones; this is
// mainly for tests and embedders with private backends.
func CreateContext(extra ...Driver) *Context {
	return &Context{
		drivers: append(registeredDrivers(), extra...),
	}
}

// GetError returns the message recorded by the most recent failing call on
// this context, or "" if nothing has failed yet. Reading does not clear it.
func (c *Context) GetError() string {
	return c.lastErr
}

func (c *Context) setErrorf(format string, args ...any) {
	c.lastErr = fmt.Sprintf(format, args...)
}

// Probe queries every driver for attached devices and replaces the
// enumeration table with the combined result, returning the entry count.
// A driver that enumerates nothing contributes zero entries; probing never
// fails context-wide. Probing invalidates all previously returned indices
// but leaves already-open handles untouched.
func (c *Context) Probe() int {
	entries := make([]listEntry, 0, len(c.drivers))
	for _, drv := range c.drivers {
		for _, info := range drv.Discover() {
			entries = append(entries, listEntry{info: clampInfo(info), driver: drv})
		}
	}
	c.list = entries
	c.probed = true
	return len(entries)
}

func clampInfo(info DeviceInfo) DeviceInfo {
	return DeviceInfo{
		Vendor:  clampStr(info.Vendor),
		Product: clampStr(info.Product),
		Path:    clampStr(info.Path),
	}
}

func clampStr(s string) string {
	if len(s) > StrSize {
		return s[:StrSize]
	}
	return s
}

func (c *Context) entryAt(index int) (listEntry, bool) {
	if !c.probed {
		c.setErrorf("no device list, call Probe first")
		return listEntry{}, false
	}
	if index < 0 || index >= len(c.list) {
		c.setErrorf("no device with index %d (%d found by last probe)", index, len(c.list))
		return listEntry{}, false
	}
	return c.list[index], true
}

// ListGetString returns the vendor name, product name or driver path of the
// enumeration entry at index. Index is valid in [0, Probe()); anything else,
// or calling before a probe, returns "" and records the failure.
func (c *Context) ListGetString(index int, kind StringValue) string {
	ent, ok := c.entryAt(index)
	if !ok {
		return ""
	}
	switch kind {
	case Vendor:
		return ent.info.Vendor
	case Product:
		return ent.info.Product
	case Path:
		return ent.info.Path
	}
	c.setErrorf("unknown string value %d", kind)
	return ""
}

// ListOpenDevice opens the device at enumeration index through its owning
// driver and registers the handle under this context. Returns nil and
// records the failure if the index is invalid or the driver cannot open
// the device. Opening the same physical device twice is driver-defined;
// the core does not deduplicate.
func (c *Context) ListOpenDevice(index int) *Device {
	ent, ok := c.entryAt(index)
	if !ok {
		return nil
	}
	dd, err := ent.driver.Open(ent.info.Path)
	if err != nil {
		c.setErrorf("driver %s could not open %q: %v", ent.driver.Name(), ent.info.Path, err)
		return nil
	}
	dev := &Device{
		ctx:    c,
		info:   ent.info,
		driver: dd,
		props:  dd.Properties(),
	}
	c.devices = append(c.devices, dev)
	return dev
}

// Update pumps one tick on every open handle: transport reads, fusion
// advancement, whatever the driver does per tick. It never blocks waiting
// for new sensor data and is meant to run once per rendered frame, or on a
// 10-20 ms cadence from a polling goroutine. A handle whose driver reports
// a transport error stays open and serves its last known values; the error
// is recorded on the context.
func (c *Context) Update() {
	for _, dev := range c.devices {
		if dev.closed {
			continue
		}
		if err := dev.driver.Update(); err != nil {
			c.setErrorf("update %q: %v", dev.info.Product, err)
		}
	}
}

// Destroy closes every open handle, best-effort, and releases the context.
// A handle that fails to close does not stop the rest from closing. The
// context must not be used, or destroyed again, afterwards.
func (c *Context) Destroy() {
	for _, dev := range c.devices {
		if dev.closed {
			continue
		}
		if err := dev.driver.Close(); err != nil {
			slog.Warn("device close failed during context destroy",
				slog.String("product", dev.info.Product),
				slog.Any("error", err))
		}
		dev.closed = true
	}
	c.devices = nil
	c.list = nil
	c.drivers = nil
	c.probed = false
}
