//go:build linux

package input

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/evremap/evremapd/linux/ioctl"
	"golang.org/x/sys/unix"
)

// Device represents an evdev input device.
// It wraps the opened /dev/input/eventN file.
type Device struct {
	file *os.File
	fd   uintptr
}

// NewDevice opens the evdev device at the given path and returns a Device.
// The path is cleaned before opening, and the device file is opened
// in non-blocking read-write mode so that reads go through the runtime
// poller. The caller is responsible for closing the device when no
// longer needed.
func NewDevice(path string) (*Device, error) {
	var (
		device *Device
		fd     int
		err    error
	)

	fd, err = unix.Open(filepath.Clean(path), unix.O_RDWR|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("input.NewDevice: %w", err)
	}

	device = &Device{
		file: os.NewFile(uintptr(fd), path),
		fd:   uintptr(fd),
	}

	return device, nil
}

// Devices scans /dev/input for event devices, opens each one, and
// returns a slice of Device pointers. If any device fails to open,
// an error is returned and no devices are returned.
func Devices() ([]*Device, error) {
	var (
		devices []*Device
		device  *Device
		paths   []string
		path    string
		err     error
	)

	paths, err = filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("input.Devices: %w", err)
	}

	devices = make([]*Device, 0, len(paths))
	for _, path = range paths {
		device, err = NewDevice(path)
		if err != nil {
			return nil, fmt.Errorf("input.Devices: %w", err)
		}

		devices = append(devices, device)
	}

	return devices, nil
}

// Name returns the human-readable name of the evdev device.
// It sends the [EVIOCGNAME] ioctl to read up to 256 bytes and
// converts the null-terminated result into a Go string.
func (dev *Device) Name() (string, error) {
	var (
		buf []byte
		err error
	)

	buf = make([]byte, 256)

	err = ioctl.Any(dev.fd, EVIOCGNAME(256), &buf[0])
	if err != nil {
		return "", fmt.Errorf("Device.Name: %w", err)
	}

	return unix.ByteSliceToString(buf), nil
}

// RawID issues the [EVIOCGID] ioctl and returns the bus, vendor,
// product, and version fields as-is, for callers (such as uinput
// device creation) that need the struct rather than its string form.
func (dev *Device) RawID() (ID, error) {
	var (
		id  ID
		err error
	)

	err = ioctl.Any(dev.fd, EVIOCGID, &id)
	if err != nil {
		return ID{}, fmt.Errorf("Device.RawID: %w", err)
	}

	return id, nil
}

// ID returns the platform-specific identifier for this evdev device.
// It issues the EVIOCGID ioctl to fetch the bus, vendor, product, and version fields.
// The result is formatted as:
// "bus 0x<bustype> vendor 0x<vendor> product 0x<product> version 0x<version>".
// e.g. "bus 0x3 vendor 0x46d product 0xc24f version 0x111".
func (dev *Device) ID() (string, error) {
	var (
		id  ID
		err error
	)

	id, err = dev.RawID()
	if err != nil {
		return "", fmt.Errorf("Device.ID: %w", err)
	}

	return fmt.Sprintf(
		"bus 0x%x vendor 0x%x product 0x%x version 0x%x",
		id.Bustype,
		id.Vendor,
		id.Product,
		id.Version,
	), nil
}

// Phys returns the physical location path of the evdev device, e.g.
// "usb-0000:00:14.0-1/input0". It issues the [EVIOCGPHYS] ioctl.
func (dev *Device) Phys() (string, error) {
	var (
		buf []byte
		err error
	)

	buf = make([]byte, 256)

	err = ioctl.Any(dev.fd, EVIOCGPHYS(256), &buf[0])
	if err != nil {
		return "", fmt.Errorf("Device.Phys: %w", err)
	}

	return unix.ByteSliceToString(buf), nil
}

// Version returns the evdev driver protocol version reported by the
// kernel via the [EVIOCGVERSION] ioctl.
func (dev *Device) Version() (int, error) {
	var (
		version int
		err     error
	)

	err = ioctl.Any(dev.fd, EVIOCGVERSION, &version)
	if err != nil {
		return 0, fmt.Errorf("Device.Version: %w", err)
	}

	return version, nil
}

// Events returns a slice of the supported event types for the device,
// leaving out EV_REP.
func (dev *Device) Events() ([]uint16, error) {
	var (
		buf       []byte
		events    []uint16
		eventType uint16
		err       error
	)

	buf = make([]byte, (EV_MAX+7)/8)

	err = ioctl.Any(
		dev.fd,
		EVIOCGBIT(0, uint(len(buf))),
		&buf[0],
	)
	if err != nil {
		return nil, fmt.Errorf("Device.Events: %w", err)
	}

	events = make([]uint16, 0, EV_CNT)

	for eventType = range uint16(EV_CNT) {
		if !TestBit(buf, uint(eventType)) {
			continue
		}

		if eventType == EV_REP {
			continue
		}

		events = append(events, eventType)
	}

	return events, nil
}

// Codes returns all supported codes for the given eventType.
func (dev *Device) Codes(eventType uint16) ([]uint16, error) {
	var (
		buf            []byte
		codes          []uint16
		maxCodes, code uint
		ok             bool
		err            error
	)

	maxCodes, ok = MaxCodes(eventType)
	if !ok {
		return nil, fmt.Errorf("Device.Codes: %w %d", ErrInvalidEventType, eventType)
	}

	buf = make([]byte, (maxCodes+7)/8)

	err = ioctl.Any(
		dev.fd,
		EVIOCGBIT(uint(eventType), uint(len(buf))),
		&buf[0],
	)
	if err != nil {
		return nil, fmt.Errorf("Device.Codes: %w", err)
	}

	codes = make([]uint16, 0, maxCodes+1)

	for code = range maxCodes + 1 {
		if !TestBit(buf, code) {
			continue
		}

		codes = append(codes, uint16(code))
	}

	return codes, nil
}

// AbsInfo returns the absolute-axis parameters (current value, range,
// fuzz, flat, resolution) for the given ABS_* code, via [EVIOCGABS].
func (dev *Device) AbsInfo(code uint16) (AbsInfo, error) {
	var (
		info AbsInfo
		err  error
	)

	err = ioctl.Any(dev.fd, EVIOCGABS(uint(code)), &info)
	if err != nil {
		return AbsInfo{}, fmt.Errorf("Device.AbsInfo: %w", err)
	}

	return info, nil
}

// Grab locks event delivery from this device to the calling process,
// via [EVIOCGRAB]. While grabbed, no other process (including X11 or
// a Wayland compositor) receives events from the underlying hardware.
func (dev *Device) Grab() error {
	var (
		arg int = 1
		err error
	)

	err = ioctl.Any(dev.fd, EVIOCGRAB(), &arg)
	if err != nil {
		return fmt.Errorf("Device.Grab: %w", err)
	}

	return nil
}

// Ungrab releases a grab previously acquired with [Device.Grab].
func (dev *Device) Ungrab() error {
	var err error

	err = ioctl.Any[int32](dev.fd, EVIOCGRAB(), nil)
	if err != nil {
		return fmt.Errorf("Device.Ungrab: %w", err)
	}

	return nil
}

// ReadEvent blocks until the kernel delivers the next input event and
// returns it. The underlying file is read through the runtime poller, so
// a pending ReadEvent returns an error wrapping [os.ErrClosed] once
// [Device.Close] runs concurrently.
func (dev *Device) ReadEvent() (Event, error) {
	var (
		event Event
		buf   []byte
		n     int
		err   error
	)

	buf = unsafe.Slice((*byte)(unsafe.Pointer(&event)), unsafe.Sizeof(event))

	n, err = dev.file.Read(buf)
	if err != nil {
		return Event{}, fmt.Errorf("Device.ReadEvent: %w", err)
	}

	if n != len(buf) {
		return Event{}, fmt.Errorf("Device.ReadEvent: short read: got %d want %d bytes", n, len(buf))
	}

	return event, nil
}

// Fd returns the underlying file descriptor, for callers that need to
// issue ioctls this package does not itself expose.
func (dev *Device) Fd() uintptr {
	return dev.fd
}

// Close closes the evdev device by closing its underlying file handle.
func (dev *Device) Close() error {
	var err error

	err = dev.file.Close()
	if err != nil {
		return fmt.Errorf("Device.Close: %w", err)
	}

	return nil
}
