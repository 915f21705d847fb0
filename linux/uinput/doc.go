//go:build linux

// Package uinput drives the Linux uinput kernel module, which lets a
// userspace process inject input events as though they came from real
// hardware. A caller declares which event types and codes the virtual
// device will emit, writes a device descriptor, and the kernel publishes
// a new /dev/input/eventN node for it.
//
// From the kernel's input-programming documentation, the canonical
// sequence against /dev/uinput is:
//
//	open /dev/uinput
//	ioctl(fd, UI_SET_EVBIT, EV_*) for each event type the device emits
//	ioctl(fd, UI_SET_KEYBIT/RELBIT/ABSBIT/..., code) for each code
//	write(fd, &uinput_user_dev, sizeof(uinput_user_dev))
//	ioctl(fd, UI_DEV_CREATE)
//	... write(fd, &input_event, sizeof(input_event)) to inject events ...
//	ioctl(fd, UI_DEV_DESTROY)
//	close(fd)
//
// This package follows that sequence rather than the newer UI_DEV_SETUP/
// UI_ABS_SETUP ioctls, matching the descriptor-write approach used by
// evmapd.c.
package uinput
