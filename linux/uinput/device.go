//go:build linux

package uinput

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/evremap/evremapd/linux/input"
	"github.com/evremap/evremapd/linux/ioctl"
	"golang.org/x/sys/unix"
)

// Device represents a virtual input device under construction, or once
// [Device.Create] has run, a live device that can have events injected
// into it with [Device.WriteEvent].
//
// The zero-value usage is: open, declare every event type and code the
// device will emit with the SetXBit methods (recording absolute-axis
// ranges along the way), then call Create.
type Device struct {
	file *os.File
	fd   uintptr
	abs  map[uint16]input.AbsInfo
}

// NewDevice opens /dev/uinput (or the given path, for testing against a
// stand-in) for read-write access. The caller declares capabilities with
// the SetXBit methods, then calls [Device.Create].
func NewDevice(path string) (*Device, error) {
	var (
		dev  *Device
		file *os.File
		err  error
	)

	file, err = os.OpenFile(filepath.Clean(path), os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("uinput.NewDevice: %w", err)
	}

	dev = &Device{
		file: file,
		fd:   file.Fd(),
		abs:  make(map[uint16]input.AbsInfo),
	}

	return dev, nil
}

// setBit issues one UI_SET_*BIT request. These requests take the code
// itself as the ioctl argument, not a pointer to it.
func (dev *Device) setBit(req uint, code uint16) error {
	var err error

	err = unix.IoctlSetInt(int(dev.fd), req, int(code))
	if err != nil {
		return err
	}

	return nil
}

// SetEvBit declares that the device emits events of the given EV_* type.
// This must be called for EV_KEY/EV_REL/EV_ABS/etc. before the matching
// SetKeyBit/SetRelBit/SetAbsBit calls for codes of that type, and before
// [Device.Create].
func (dev *Device) SetEvBit(ev uint16) error {
	var err error

	err = dev.setBit(UI_SET_EVBIT, ev)
	if err != nil {
		return fmt.Errorf("Device.SetEvBit: %w", err)
	}

	return nil
}

// SetKeyBit declares a KEY_*/BTN_* code the device can emit.
func (dev *Device) SetKeyBit(code uint16) error {
	var err error

	err = dev.setBit(UI_SET_KEYBIT, code)
	if err != nil {
		return fmt.Errorf("Device.SetKeyBit: %w", err)
	}

	return nil
}

// SetRelBit declares a REL_* code the device can emit.
func (dev *Device) SetRelBit(code uint16) error {
	var err error

	err = dev.setBit(UI_SET_RELBIT, code)
	if err != nil {
		return fmt.Errorf("Device.SetRelBit: %w", err)
	}

	return nil
}

// SetAbsBit declares an ABS_* code the device can emit and records its
// value range, fuzz, and flat for the descriptor [Device.Create] writes.
// The descriptor has no resolution field, so info.Resolution is unused.
func (dev *Device) SetAbsBit(code uint16, info input.AbsInfo) error {
	var err error

	err = dev.setBit(UI_SET_ABSBIT, code)
	if err != nil {
		return fmt.Errorf("Device.SetAbsBit: %w", err)
	}

	dev.abs[code] = info

	return nil
}

// SetMscBit declares an MSC_* code the device can emit.
func (dev *Device) SetMscBit(code uint16) error {
	var err error

	err = dev.setBit(UI_SET_MSCBIT, code)
	if err != nil {
		return fmt.Errorf("Device.SetMscBit: %w", err)
	}

	return nil
}

// SetLedBit declares an LED_* code the device can emit.
func (dev *Device) SetLedBit(code uint16) error {
	var err error

	err = dev.setBit(UI_SET_LEDBIT, code)
	if err != nil {
		return fmt.Errorf("Device.SetLedBit: %w", err)
	}

	return nil
}

// SetSndBit declares an SND_* code the device can emit.
func (dev *Device) SetSndBit(code uint16) error {
	var err error

	err = dev.setBit(UI_SET_SNDBIT, code)
	if err != nil {
		return fmt.Errorf("Device.SetSndBit: %w", err)
	}

	return nil
}

// SetSwBit declares an SW_* code the device can emit.
func (dev *Device) SetSwBit(code uint16) error {
	var err error

	err = dev.setBit(UI_SET_SWBIT, code)
	if err != nil {
		return fmt.Errorf("Device.SetSwBit: %w", err)
	}

	return nil
}

// Create writes the uinput_user_dev descriptor built from name, identity,
// and every axis registered via [Device.SetAbsBit], sets the device's
// physical path, then asks the kernel to publish the device via
// [UI_DEV_CREATE]. After Create returns successfully the device node
// appears under /dev/input and events can be injected with
// [Device.WriteEvent].
func (dev *Device) Create(name string, identity input.ID, phys string) error {
	var (
		desc userDev
		code uint16
		info input.AbsInfo
		err  error
	)

	if len(name) >= maxNameSize {
		return fmt.Errorf("Device.Create: name %q exceeds %d bytes", name, maxNameSize-1)
	}

	copy(desc.Name[:], name)

	desc.ID = id{
		Bustype: identity.Bustype,
		Vendor:  identity.Vendor,
		Product: identity.Product,
		Version: identity.Version,
	}

	for code, info = range dev.abs {
		desc.AbsMax[code] = info.Maximum
		desc.AbsMin[code] = info.Minimum
		desc.AbsFuzz[code] = info.Fuzz
		desc.AbsFlat[code] = info.Flat
	}

	err = ioctl.Any(dev.fd, uiSetPhys(len(phys)+1), &[]byte(phys + "\x00")[0])
	if err != nil {
		return fmt.Errorf("Device.Create: %w", err)
	}

	_, err = dev.file.Write(unsafe.Slice((*byte)(unsafe.Pointer(&desc)), unsafe.Sizeof(desc)))
	if err != nil {
		return fmt.Errorf("Device.Create: %w", err)
	}

	err = ioctl.Any[struct{}](dev.fd, UI_DEV_CREATE, nil)
	if err != nil {
		return fmt.Errorf("Device.Create: %w", err)
	}

	return nil
}

// Destroy removes the virtual device published by [Device.Create].
func (dev *Device) Destroy() error {
	var err error

	err = ioctl.Any[struct{}](dev.fd, UI_DEV_DESTROY, nil)
	if err != nil {
		return fmt.Errorf("Device.Destroy: %w", err)
	}

	return nil
}

// WriteEvent injects a single event into the kernel's input subsystem as
// though it came from the real hardware this virtual device stands in
// for.
func (dev *Device) WriteEvent(event input.Event) error {
	var (
		n   int
		buf []byte
		err error
	)

	buf = unsafe.Slice((*byte)(unsafe.Pointer(&event)), unsafe.Sizeof(event))

	n, err = dev.file.Write(buf)
	if err != nil {
		return fmt.Errorf("Device.WriteEvent: %w", err)
	}

	if n != len(buf) {
		return fmt.Errorf("Device.WriteEvent: short write: wrote %d want %d bytes", n, len(buf))
	}

	return nil
}

// Close closes the underlying uinput file. Destroy should be called
// first if [Device.Create] succeeded.
func (dev *Device) Close() error {
	var err error

	err = dev.file.Close()
	if err != nil {
		return fmt.Errorf("Device.Close: %w", err)
	}

	return nil
}
