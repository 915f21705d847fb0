// Package remap implements the remapping core: rule tables, capability
// synthesis, key-shadow tracking, per-axis normalization, and the event
// translator that drives all of them. It has no dependency on any
// concrete device transport; it operates purely on [Event] values and
// is exercised the same way whether the events came from a real evdev
// node or a test fixture.
package remap
