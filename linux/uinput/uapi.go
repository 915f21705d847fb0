//go:build linux

package uinput

import "github.com/evremap/evremapd/linux/ioctl"

const (
	// maxNameSize is UINPUT_MAX_NAME_SIZE, the size of the name field in
	// struct uinput_user_dev.
	maxNameSize = 80

	// absSize is ABS_CNT, the number of entries in each per-axis array
	// of struct uinput_user_dev.
	absSize = 64

	// uinputIoctlBase is the magic type byte ('U') for all uinput ioctls.
	uinputIoctlBase = 'U'
)

// userDev is wire-compatible with struct uinput_user_dev: the descriptor
// written to the uinput file once all UI_SET_* capability bits have been
// declared, immediately before [UI_DEV_CREATE].
type userDev struct {
	Name        [maxNameSize]byte
	ID          id
	FFEffectMax uint32
	AbsMax      [absSize]int32
	AbsMin      [absSize]int32
	AbsFuzz     [absSize]int32
	AbsFlat     [absSize]int32
}

// id mirrors struct input_id (bustype/vendor/product/version), redeclared
// here rather than imported so this package has no compile-time dependency
// on the evdev side's struct layout guarantees beyond the wire format.
type id struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

var (
	// UI_DEV_CREATE instructs the kernel to publish the virtual device
	// described by the most recently written [userDev] descriptor.
	UI_DEV_CREATE = ioctl.IO(uinputIoctlBase, 1)

	// UI_DEV_DESTROY tears down a previously created virtual device.
	UI_DEV_DESTROY = ioctl.IO(uinputIoctlBase, 2)

	// UI_SET_EVBIT declares that the virtual device emits events of the
	// given EV_* type.
	UI_SET_EVBIT = ioctl.IOW(uinputIoctlBase, 100, int32(0))

	// UI_SET_KEYBIT declares a KEY_*/BTN_* code the device can emit.
	UI_SET_KEYBIT = ioctl.IOW(uinputIoctlBase, 101, int32(0))

	// UI_SET_RELBIT declares a REL_* code the device can emit.
	UI_SET_RELBIT = ioctl.IOW(uinputIoctlBase, 102, int32(0))

	// UI_SET_ABSBIT declares an ABS_* code the device can emit.
	UI_SET_ABSBIT = ioctl.IOW(uinputIoctlBase, 103, int32(0))

	// UI_SET_MSCBIT declares an MSC_* code the device can emit.
	UI_SET_MSCBIT = ioctl.IOW(uinputIoctlBase, 104, int32(0))

	// UI_SET_LEDBIT declares an LED_* code the device can emit.
	UI_SET_LEDBIT = ioctl.IOW(uinputIoctlBase, 105, int32(0))

	// UI_SET_SNDBIT declares an SND_* code the device can emit.
	UI_SET_SNDBIT = ioctl.IOW(uinputIoctlBase, 106, int32(0))

	// UI_SET_FFBIT declares a force-feedback effect type the device
	// supports. Unused by this package's callers, kept for completeness
	// of the capability-declaration family.
	UI_SET_FFBIT = ioctl.IOW(uinputIoctlBase, 107, int32(0))

	// UI_SET_SWBIT declares an SW_* code the device can emit.
	UI_SET_SWBIT = ioctl.IOW(uinputIoctlBase, 109, int32(0))

	// UI_SET_PROPBIT declares an INPUT_PROP_* the device carries.
	UI_SET_PROPBIT = ioctl.IOW(uinputIoctlBase, 110, int32(0))
)

// uiSetPhys returns the ioctl request code for setting the device's
// physical path string (UI_SET_PHYS), sized for a buffer of the given
// length in bytes, including the terminating NUL.
func uiSetPhys(length int) uint {
	return ioctl.IOC(ioctl.IOC_WRITE, uinputIoctlBase, 108, uint(length))
}
